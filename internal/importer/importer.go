package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"salonpos/internal/domain"
	"salonpos/internal/money"
)

type ItemWriter interface {
	Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates items and
// services for one tenant. Composite items may reference supply rows by
// SKU; supplies are imported first so references resolve in one run.
type CSVImporter struct {
	reader   *csv.Reader
	itemRepo ItemWriter
	tenantID string
}

func NewCSVImporter(r io.Reader, repo ItemWriter, tenantID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		itemRepo: repo,
		tenantID: tenantID,
	}
}

type csvRow struct {
	SKU        string
	Name       string
	Kind       string
	PriceCents int64
	Fractional bool
	StockQty   int64
	// Components holds "supply-sku:qty" pairs for composite items.
	Components map[string]int64
}

// Run parses CSV rows and upserts catalog items. Composite rows are
// held back until every plain row is saved, so component SKUs resolve
// regardless of row order. Returns the number of rows imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		plain     []*csvRow
		composite []*csvRow
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row: %w", err)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return 0, err
		}
		if row == nil {
			continue
		}
		if len(row.Components) > 0 {
			composite = append(composite, row)
		} else {
			plain = append(plain, row)
		}
	}

	imported := 0
	idBySKU := make(map[string]string)

	for _, row := range plain {
		saved, err := i.save(ctx, row, nil)
		if err != nil {
			return imported, err
		}
		idBySKU[saved.SKU] = saved.ID
		imported++
	}

	for _, row := range composite {
		components := make([]domain.ItemComponent, 0, len(row.Components))
		for sku, qty := range row.Components {
			supplyID, ok := idBySKU[sku]
			if !ok {
				return imported, fmt.Errorf("row %q: unknown component sku %q", row.SKU, sku)
			}
			components = append(components, domain.ItemComponent{SupplyID: supplyID, QtyPerUnit: qty})
		}
		if _, err := i.save(ctx, row, components); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow, components []domain.ItemComponent) (*domain.CatalogItem, error) {
	if row.SKU == "" || row.Name == "" {
		return nil, fmt.Errorf("invalid row (missing sku or name) for sku %q", row.SKU)
	}
	if row.Kind != domain.ItemKindProduct && row.Kind != domain.ItemKindService {
		return nil, fmt.Errorf("invalid kind %q for sku %q", row.Kind, row.SKU)
	}

	item := domain.CatalogItem{
		TenantID:   i.tenantID,
		SKU:        row.SKU,
		Name:       row.Name,
		Kind:       row.Kind,
		PriceCents: row.PriceCents,
		Fractional: row.Fractional,
		Active:     true,
		StockQty:   row.StockQty,
		Components: components,
	}

	saved, err := i.itemRepo.Upsert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("upsert item %q: %w", row.SKU, err)
	}
	return saved, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	sku := pick(record, index, "sku")
	if sku == "" {
		return nil, nil
	}

	kind := pick(record, index, "kind")
	if kind == "" {
		kind = domain.ItemKindProduct
	}

	priceCents := int64(0)
	if s := pick(record, index, "price"); s != "" {
		cents, err := money.ParseCents(s)
		if err != nil {
			return nil, fmt.Errorf("row %q: bad price %q", sku, s)
		}
		priceCents = cents
	}

	var stock int64
	if s := pick(record, index, "stock"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("row %q: bad stock %q", sku, s)
		}
		stock = n
	}

	row := &csvRow{
		SKU:        sku,
		Name:       pick(record, index, "name"),
		Kind:       kind,
		PriceCents: priceCents,
		Fractional: strings.EqualFold(pick(record, index, "fractional"), "true"),
		StockQty:   stock,
	}

	if s := pick(record, index, "components"); s != "" {
		row.Components = make(map[string]int64)
		for _, pair := range strings.Split(s, ";") {
			parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("row %q: bad component %q", sku, pair)
			}
			qty, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil || qty <= 0 {
				return nil, fmt.Errorf("row %q: bad component quantity %q", sku, parts[1])
			}
			row.Components[parts[0]] = qty
		}
	}

	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
