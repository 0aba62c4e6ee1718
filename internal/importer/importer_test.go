package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"salonpos/internal/domain"
)

type stubItemRepo struct {
	items []domain.CatalogItem
}

func (s *stubItemRepo) Upsert(_ context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	item.ID = fmt.Sprintf("id-%s", item.SKU)
	s.items = append(s.items, item)
	return &item, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `sku,name,kind,price,fractional,stock,components
SV-CUT,Haircut,service,60.00,,,
IT-SHAMPOO,Shampoo 300ml,item,25.00,,24,
IT-OIL,Argan Oil,item,45.00,true,10,
IT-KIT,Treatment Kit,item,80.00,,,IT-SHAMPOO:1;IT-OIL:2`

	repo := &stubItemRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, "tenant-1")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 rows imported, got %d", count)
	}

	bySKU := map[string]domain.CatalogItem{}
	for _, it := range repo.items {
		bySKU[it.SKU] = it
	}

	cut := bySKU["SV-CUT"]
	if cut.Kind != domain.ItemKindService || cut.PriceCents != 6000 {
		t.Fatalf("unexpected service row: %+v", cut)
	}
	oil := bySKU["IT-OIL"]
	if !oil.Fractional || oil.StockQty != 10 || oil.PriceCents != 4500 {
		t.Fatalf("unexpected item row: %+v", oil)
	}

	kit := bySKU["IT-KIT"]
	if len(kit.Components) != 2 {
		t.Fatalf("expected 2 components on composite, got %+v", kit.Components)
	}
	qtyBySupply := map[string]int64{}
	for _, c := range kit.Components {
		qtyBySupply[c.SupplyID] = c.QtyPerUnit
	}
	if qtyBySupply["id-IT-SHAMPOO"] != 1 || qtyBySupply["id-IT-OIL"] != 2 {
		t.Fatalf("component SKUs did not resolve to supply ids: %+v", qtyBySupply)
	}
}

func TestCSVImporter_CompositeBeforeSupply(t *testing.T) {
	// Composite row appears before the supplies it references.
	csvData := `sku,name,kind,price,stock,components
IT-KIT,Treatment Kit,item,80.00,,IT-OIL:1
IT-OIL,Argan Oil,item,45.00,10,`

	repo := &stubItemRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, "tenant-1")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows imported, got %d", count)
	}
	// Supplies save first regardless of row order.
	if repo.items[0].SKU != "IT-OIL" {
		t.Fatalf("expected supply saved first, got %s", repo.items[0].SKU)
	}
}

func TestCSVImporter_UnknownComponent(t *testing.T) {
	csvData := `sku,name,kind,price,components
IT-KIT,Treatment Kit,item,80.00,IT-GHOST:1`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubItemRepo{}, "tenant-1")
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for unknown component sku")
	}
}

func TestCSVImporter_BadPrice(t *testing.T) {
	csvData := `sku,name,kind,price
IT-X,Thing,item,12.345`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubItemRepo{}, "tenant-1")
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for sub-cent price")
	}
}
