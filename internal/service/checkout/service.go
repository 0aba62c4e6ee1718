package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"salonpos/internal/checkout"
	"salonpos/internal/domain"
	paymentrepo "salonpos/internal/repository/payment"
	treatmentrepo "salonpos/internal/repository/treatment"
)

var (
	ErrSessionNotFound    = errors.New("checkout session not found")
	ErrSessionExists      = errors.New("treatment already has an open checkout session")
	ErrFinalizeInProgress = errors.New("checkout finalize already in progress")
)

// Service drives the checkout flow: it owns the in-memory sessions and
// bridges the allocation engine to the payment and treatment stores.
// Sessions are local to this instance; one cashier flow owns one session.
type Service struct {
	mu          sync.Mutex
	sessions    map[string]*checkout.Session
	byTreatment map[string]string
	// finalizing guards against duplicate finalize submissions (double
	// click, client retry) racing each other on one session.
	finalizing map[string]struct{}

	treatments treatmentStore
	payments   paymentStore
}

type treatmentStore interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Treatment, error)
	Close(ctx context.Context, tenantID, treatmentID string, eventPayload []byte) error
}

type paymentStore interface {
	GetMethod(ctx context.Context, tenantID, id string) (*domain.PaymentMethod, error)
	CreatePayment(ctx context.Context, in paymentrepo.CreatePaymentInput) (*domain.Payment, error)
}

func New(treatments treatmentrepo.Repository, payments paymentrepo.Repository) *Service {
	return &Service{
		sessions:    make(map[string]*checkout.Session),
		byTreatment: make(map[string]string),
		finalizing:  make(map[string]struct{}),
		treatments:  treatments,
		payments:    payments,
	}
}

// Open starts a checkout session for an open treatment. The target is
// the outstanding balance at this moment; later line edits do not move
// it, matching the modal-open snapshot behavior.
func (s *Service) Open(ctx context.Context, tenantID, treatmentID string) (*checkout.Session, error) {
	t, err := s.treatments.GetByID(ctx, tenantID, treatmentID)
	if err != nil {
		return nil, err
	}
	if t.Status != domain.TreatmentOpen {
		return nil, domain.ErrTreatmentClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byTreatment[treatmentID]; ok {
		return nil, ErrSessionExists
	}
	session := checkout.NewSession(tenantID, treatmentID, t.OutstandingCents())
	s.sessions[session.ID] = session
	s.byTreatment[treatmentID] = session.ID
	return session, nil
}

// Get returns the session for inspection.
func (s *Service) Get(tenantID, sessionID string) (*checkout.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(tenantID, sessionID)
}

// AddAllocation resolves the payment method and records an allocation.
func (s *Service) AddAllocation(ctx context.Context, tenantID, sessionID, methodID string, amountCents int64, installments int) (checkout.AddResult, error) {
	if methodID == "" {
		return checkout.AddResult{}, domain.Invalid("methodId required")
	}
	method, err := s.payments.GetMethod(ctx, tenantID, methodID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return checkout.AddResult{}, domain.Invalid("payment method not found")
		}
		return checkout.AddResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(tenantID, sessionID)
	if err != nil {
		return checkout.AddResult{}, err
	}
	return session.Add(*method, amountCents, installments)
}

// RemoveAllocation drops one allocation from the session.
func (s *Service) RemoveAllocation(tenantID, sessionID, allocationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(tenantID, sessionID)
	if err != nil {
		return err
	}
	return session.Remove(allocationID)
}

// Cancel discards the session. Nothing was persisted, so there is
// nothing to roll back.
func (s *Service) Cancel(tenantID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(tenantID, sessionID)
	if err != nil {
		return err
	}
	s.drop(session)
	return nil
}

type closedEvent struct {
	TreatmentID string         `json:"treatmentId"`
	TenantID    string         `json:"tenantId"`
	TotalCents  int64          `json:"totalCents"`
	Payments    []eventPayment `json:"payments"`
}

type eventPayment struct {
	MethodID     string `json:"methodId"`
	AmountCents  int64  `json:"amountCents"`
	Installments int    `json:"installments"`
}

// Finalize persists the allocations as payments, one at a time in list
// order, then closes the treatment. Submissions are deliberately
// sequential: the backing store does not tolerate concurrent writes to
// the same treatment. On a mid-sequence failure the remaining steps are
// aborted and already-persisted payments are kept; the session survives
// so the state can be inspected and retried.
func (s *Service) Finalize(ctx context.Context, tenantID, sessionID string) error {
	s.mu.Lock()
	session, err := s.lookup(tenantID, sessionID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !session.FullyPaid() {
		s.mu.Unlock()
		return checkout.ErrNotFullyPaid
	}
	if _, busy := s.finalizing[sessionID]; busy {
		s.mu.Unlock()
		return ErrFinalizeInProgress
	}
	s.finalizing[sessionID] = struct{}{}
	allocations := make([]checkout.Allocation, len(session.Allocations))
	copy(allocations, session.Allocations)
	treatmentID := session.TreatmentID
	target := session.TargetCents
	s.mu.Unlock()

	event := closedEvent{
		TreatmentID: treatmentID,
		TenantID:    tenantID,
		TotalCents:  target,
	}
	for i, alloc := range allocations {
		if alloc.AmountCents == 0 {
			continue
		}
		if _, err := s.payments.CreatePayment(ctx, paymentrepo.CreatePaymentInput{
			TreatmentID:  treatmentID,
			MethodID:     alloc.MethodID,
			AmountCents:  alloc.AmountCents,
			Installments: alloc.Installments,
		}); err != nil {
			s.clearFinalizing(sessionID)
			return fmt.Errorf("persist payment %d of %d: %w", i+1, len(allocations), err)
		}
		event.Payments = append(event.Payments, eventPayment{
			MethodID:     alloc.MethodID,
			AmountCents:  alloc.AmountCents,
			Installments: alloc.Installments,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.clearFinalizing(sessionID)
		return fmt.Errorf("marshal closed event: %w", err)
	}
	if err := s.treatments.Close(ctx, tenantID, treatmentID, payload); err != nil {
		s.clearFinalizing(sessionID)
		return fmt.Errorf("close treatment: %w", err)
	}

	s.mu.Lock()
	delete(s.finalizing, sessionID)
	if current, ok := s.sessions[sessionID]; ok {
		s.drop(current)
	}
	s.mu.Unlock()
	return nil
}

func (s *Service) clearFinalizing(sessionID string) {
	s.mu.Lock()
	delete(s.finalizing, sessionID)
	s.mu.Unlock()
}

// lookup must be called with the mutex held.
func (s *Service) lookup(tenantID, sessionID string) (*checkout.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.TenantID != tenantID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// drop must be called with the mutex held.
func (s *Service) drop(session *checkout.Session) {
	delete(s.sessions, session.ID)
	delete(s.byTreatment, session.TreatmentID)
}
