package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"salonpos/internal/checkout"
	"salonpos/internal/domain"
	"salonpos/internal/money"
	checkoutsvc "salonpos/internal/service/checkout"
)

// writeError maps service errors to HTTP statuses. Known business and
// validation messages are surfaced verbatim; anything unexpected hides
// behind a generic message.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsInvalid(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, checkoutsvc.ErrSessionNotFound),
		errors.Is(err, checkout.ErrAllocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrTreatmentClosed),
		errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, checkoutsvc.ErrSessionExists),
		errors.Is(err, checkoutsvc.ErrFinalizeInProgress):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, checkout.ErrAmountNotPositive),
		errors.Is(err, checkout.ErrInstallmentInvalid),
		errors.Is(err, checkout.ErrInstallmentLimit),
		errors.Is(err, checkout.ErrMethodInactive),
		errors.Is(err, checkout.ErrNotFullyPaid),
		errors.Is(err, money.ErrBadAmount),
		errors.Is(err, money.ErrBadQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

func writeValidationError(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

type amountView struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

func amount(cents int64) amountView {
	return amountView{Cents: cents, Formatted: money.FormatCents(cents)}
}

type allocationView struct {
	ID           string             `json:"id"`
	MethodID     string             `json:"methodId"`
	MethodName   string             `json:"methodName"`
	Kind         domain.PaymentKind `json:"kind"`
	Amount       amountView         `json:"amount"`
	Installments int                `json:"installments"`
}

type sessionView struct {
	ID          string           `json:"id"`
	TreatmentID string           `json:"treatmentId"`
	Target      amountView       `json:"target"`
	Allocations []allocationView `json:"allocations"`
	Remaining   amountView       `json:"remaining"`
	Change      amountView       `json:"change"`
	FullyPaid   bool             `json:"fullyPaid"`
	Suggested   amountView       `json:"suggested"`
}

func toSessionView(s *checkout.Session) sessionView {
	allocations := make([]allocationView, 0, len(s.Allocations))
	for _, a := range s.Allocations {
		allocations = append(allocations, allocationView{
			ID:           a.ID,
			MethodID:     a.MethodID,
			MethodName:   a.MethodName,
			Kind:         a.Kind,
			Amount:       amount(a.AmountCents),
			Installments: a.Installments,
		})
	}
	remaining := s.RemainingCents()
	return sessionView{
		ID:          s.ID,
		TreatmentID: s.TreatmentID,
		Target:      amount(s.TargetCents),
		Allocations: allocations,
		Remaining:   amount(remaining),
		Change:      amount(s.ChangeCents),
		FullyPaid:   s.FullyPaid(),
		Suggested:   amount(remaining),
	}
}

type treatmentView struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"clientId"`
	Status      string     `json:"status"`
	Discount    amountView `json:"discount"`
	Total       amountView `json:"total"`
	Outstanding amountView `json:"outstanding"`
	Lines       []lineView `json:"lines"`
}

type lineView struct {
	ID        string     `json:"id"`
	ItemID    string     `json:"itemId"`
	Name      string     `json:"name"`
	Kind      string     `json:"kind"`
	Quantity  string     `json:"quantity"`
	UnitPrice amountView `json:"unitPrice"`
	Discount  amountView `json:"discount"`
	Total     amountView `json:"total"`
}

func toTreatmentView(t *domain.Treatment) treatmentView {
	lines := make([]lineView, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, lineView{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Name:      l.Name,
			Kind:      l.Kind,
			Quantity:  money.FormatQuantity(l.QuantityMils),
			UnitPrice: amount(l.UnitPriceCents),
			Discount:  amount(l.DiscountCents),
			Total:     amount(l.TotalCents),
		})
	}
	return treatmentView{
		ID:          t.ID,
		ClientID:    t.ClientID,
		Status:      t.Status,
		Discount:    amount(t.DiscountCents),
		Total:       amount(t.TotalCents),
		Outstanding: amount(t.OutstandingCents()),
		Lines:       lines,
	}
}
