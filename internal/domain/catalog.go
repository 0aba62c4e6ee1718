package domain

import "time"

// Catalog item kinds. Services are not stock-tracked.
const (
	ItemKindProduct = "item"
	ItemKindService = "service"
)

type CatalogItem struct {
	ID         string `json:"id"`
	TenantID   string `json:"-"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	PriceCents int64  `json:"priceCents"`
	// Fractional items may be sold in half-unit steps (e.g. half portions).
	Fractional bool `json:"fractional"`
	Active     bool `json:"active"`
	// StockQty is the directly tracked stock for plain items, in whole
	// units. Composite items derive availability from Components instead.
	StockQty   int64           `json:"stockQty"`
	Components []ItemComponent `json:"components,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ItemComponent ties a composite item to one of its supplies.
type ItemComponent struct {
	SupplyID       string `json:"supplyId"`
	SupplyStockQty int64  `json:"-"`
	QtyPerUnit     int64  `json:"qtyPerUnit"`
}

// HasStock reports whether one unit of the item can be sold right now.
// Services are always available. Composite items are available only when
// every component supply covers one unit.
func (c CatalogItem) HasStock() bool {
	if c.Kind == ItemKindService {
		return true
	}
	if len(c.Components) > 0 {
		for _, comp := range c.Components {
			if comp.QtyPerUnit <= 0 {
				continue
			}
			if comp.SupplyStockQty < comp.QtyPerUnit {
				return false
			}
		}
		return true
	}
	return c.StockQty > 0
}
