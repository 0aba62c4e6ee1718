package domain

import "time"

// Treatment statuses.
const (
	TreatmentOpen   = "open"
	TreatmentClosed = "closed"
)

// Treatment is a service ticket: the order aggregate a checkout closes.
// Monetary fields are integer cents; quantities are thousandths of a
// unit so fractional quantities stay integral.
type Treatment struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"-"`
	ClientID      string          `json:"clientId"`
	Status        string          `json:"status"`
	DiscountCents int64           `json:"discountCents"`
	TotalCents    int64           `json:"totalCents"`
	CreatedAt     time.Time       `json:"createdAt"`
	Lines         []TreatmentLine `json:"lines,omitempty"`
}

type TreatmentLine struct {
	ID          string `json:"id"`
	TreatmentID string `json:"treatmentId"`
	ItemID      string `json:"itemId"`
	// Name and unit price are snapshots taken when the line was added;
	// later catalog edits do not reprice committed lines.
	Name           string    `json:"name"`
	Kind           string    `json:"kind"`
	QuantityMils   int64     `json:"quantityMils"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	DiscountCents  int64     `json:"discountCents"`
	TotalCents     int64     `json:"totalCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OutstandingCents is the amount a checkout must reconcile: the line
// total minus the manual discount, never negative.
func (t Treatment) OutstandingCents() int64 {
	out := t.TotalCents - t.DiscountCents
	if out < 0 {
		return 0
	}
	return out
}
