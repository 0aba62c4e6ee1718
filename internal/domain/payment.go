package domain

import "time"

// PaymentKind classifies a payment method explicitly. Only credit cards
// carry installments.
type PaymentKind string

const (
	PaymentKindCash       PaymentKind = "cash"
	PaymentKindPix        PaymentKind = "pix"
	PaymentKindCreditCard PaymentKind = "credit_card"
	PaymentKindDebitCard  PaymentKind = "debit_card"
	PaymentKindOther      PaymentKind = "other"
)

func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentKindCash, PaymentKindPix, PaymentKindCreditCard, PaymentKindDebitCard, PaymentKindOther:
		return true
	}
	return false
}

type PaymentMethod struct {
	ID               string      `json:"id"`
	TenantID         string      `json:"-"`
	Name             string      `json:"name"`
	Kind             PaymentKind `json:"kind"`
	InstallmentLimit int         `json:"installmentLimit"`
	Active           bool        `json:"active"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// Payment is one persisted portion of a treatment's settlement.
type Payment struct {
	ID           string    `json:"id"`
	TreatmentID  string    `json:"treatmentId"`
	MethodID     string    `json:"methodId"`
	AmountCents  int64     `json:"amountCents"`
	Installments int       `json:"installments"`
	CreatedAt    time.Time `json:"createdAt"`
}
