// Package checkout implements the split-payment allocation engine. A
// session tracks how an outstanding treatment balance is divided across
// payment methods until it reaches zero. All amounts are integer cents,
// so reconciliation is exact equality rather than an epsilon check.
package checkout

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"salonpos/internal/domain"
)

var (
	ErrAmountNotPositive  = errors.New("amount must be positive")
	ErrMethodInactive     = errors.New("payment method is inactive")
	ErrInstallmentInvalid = errors.New("installments must be at least 1")
	ErrInstallmentLimit   = errors.New("installments exceed method limit")
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrNotFullyPaid       = errors.New("treatment is not fully paid")
)

// Allocation is one portion of the target assigned to a payment method.
// It lives only in memory until the session is finalized.
type Allocation struct {
	ID           string             `json:"id"`
	MethodID     string             `json:"methodId"`
	MethodName   string             `json:"methodName"`
	Kind         domain.PaymentKind `json:"kind"`
	AmountCents  int64              `json:"amountCents"`
	Installments int                `json:"installments"`
}

// Session is the in-memory state of one checkout flow. It is owned by a
// single cashier flow; callers serialize access.
type Session struct {
	ID          string
	TenantID    string
	TreatmentID string
	TargetCents int64
	Allocations []Allocation
	// ChangeCents is the excess tendered on the most recent allocation,
	// returned to the customer and never persisted. Cleared when an
	// allocation is removed.
	ChangeCents int64
	CreatedAt   time.Time
}

// AddResult reports the outcome of an Add, including the suggested
// amount to pre-fill for the next allocation.
type AddResult struct {
	Allocation     Allocation
	ChangeCents    int64
	RemainingCents int64
	SuggestedCents int64
}

func NewSession(tenantID, treatmentID string, targetCents int64) *Session {
	return &Session{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		TreatmentID: treatmentID,
		TargetCents: targetCents,
		CreatedAt:   time.Now().UTC(),
	}
}

// AllocatedCents is the sum of all recorded allocations.
func (s *Session) AllocatedCents() int64 {
	var sum int64
	for _, a := range s.Allocations {
		sum += a.AmountCents
	}
	return sum
}

// RemainingCents is the balance still owed, never negative.
func (s *Session) RemainingCents() int64 {
	remaining := s.TargetCents - s.AllocatedCents()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FullyPaid reports whether the allocations reconcile exactly with the
// target.
func (s *Session) FullyPaid() bool {
	return s.RemainingCents() == 0
}

// Add validates and appends an allocation. Amounts beyond the remaining
// balance are clamped to it; the excess is reported as change. Rejected
// allocations leave the session unchanged.
func (s *Session) Add(method domain.PaymentMethod, amountCents int64, installments int) (AddResult, error) {
	if amountCents <= 0 {
		return AddResult{}, ErrAmountNotPositive
	}
	if !method.Active {
		return AddResult{}, ErrMethodInactive
	}
	if installments < 1 {
		return AddResult{}, ErrInstallmentInvalid
	}
	if method.Kind != domain.PaymentKindCreditCard {
		installments = 1
	} else if installments > method.InstallmentLimit {
		return AddResult{}, ErrInstallmentLimit
	}

	remaining := s.RemainingCents()
	var change int64
	recorded := amountCents
	if recorded > remaining {
		change = recorded - remaining
		recorded = remaining
	}

	alloc := Allocation{
		ID:           uuid.NewString(),
		MethodID:     method.ID,
		MethodName:   method.Name,
		Kind:         method.Kind,
		AmountCents:  recorded,
		Installments: installments,
	}
	s.Allocations = append(s.Allocations, alloc)
	s.ChangeCents = change

	newRemaining := s.RemainingCents()
	return AddResult{
		Allocation:     alloc,
		ChangeCents:    change,
		RemainingCents: newRemaining,
		SuggestedCents: newRemaining,
	}, nil
}

// Remove deletes an allocation by id and clears any stale change
// indicator.
func (s *Session) Remove(allocationID string) error {
	for i, a := range s.Allocations {
		if a.ID == allocationID {
			s.Allocations = append(s.Allocations[:i], s.Allocations[i+1:]...)
			s.ChangeCents = 0
			return nil
		}
	}
	return ErrAllocationNotFound
}
