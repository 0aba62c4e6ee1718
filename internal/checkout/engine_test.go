package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"salonpos/internal/domain"
)

func cashMethod() domain.PaymentMethod {
	return domain.PaymentMethod{ID: "m-cash", Name: "Dinheiro", Kind: domain.PaymentKindCash, InstallmentLimit: 1, Active: true}
}

func pixMethod() domain.PaymentMethod {
	return domain.PaymentMethod{ID: "m-pix", Name: "Pix", Kind: domain.PaymentKindPix, InstallmentLimit: 1, Active: true}
}

func creditMethod(limit int) domain.PaymentMethod {
	return domain.PaymentMethod{ID: "m-credit", Name: "Cartão de Crédito", Kind: domain.PaymentKindCreditCard, InstallmentLimit: limit, Active: true}
}

func TestAddRejectsNonPositiveAmount(t *testing.T) {
	s := NewSession("t1", "tr1", 10000)

	_, err := s.Add(cashMethod(), 0, 1)
	assert.ErrorIs(t, err, ErrAmountNotPositive)
	_, err = s.Add(cashMethod(), -500, 1)
	assert.ErrorIs(t, err, ErrAmountNotPositive)
	assert.Empty(t, s.Allocations)
	assert.Equal(t, int64(10000), s.RemainingCents())
}

func TestAddRejectsInactiveMethod(t *testing.T) {
	s := NewSession("t1", "tr1", 10000)
	m := cashMethod()
	m.Active = false

	_, err := s.Add(m, 1000, 1)
	assert.ErrorIs(t, err, ErrMethodInactive)
	assert.Empty(t, s.Allocations)
}

func TestAddRejectsInstallmentsOverLimit(t *testing.T) {
	s := NewSession("t1", "tr1", 10000)

	_, err := s.Add(creditMethod(6), 10000, 12)
	assert.ErrorIs(t, err, ErrInstallmentLimit)
	assert.Empty(t, s.Allocations)
	assert.Equal(t, int64(10000), s.RemainingCents())
}

func TestAddRejectsNonPositiveInstallments(t *testing.T) {
	s := NewSession("t1", "tr1", 10000)

	_, err := s.Add(creditMethod(6), 5000, 0)
	assert.ErrorIs(t, err, ErrInstallmentInvalid)
	assert.Empty(t, s.Allocations)
	assert.Equal(t, int64(10000), s.RemainingCents())
}

func TestAddForcesSingleInstallmentForNonCredit(t *testing.T) {
	s := NewSession("t1", "tr1", 10000)

	res, err := s.Add(pixMethod(), 10000, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allocation.Installments)
}

func TestAddAllowsCreditInstallmentsWithinLimit(t *testing.T) {
	s := NewSession("t1", "tr1", 10000)

	res, err := s.Add(creditMethod(6), 10000, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Allocation.Installments)
}

func TestAddClampsOverpaymentAndReportsChange(t *testing.T) {
	s := NewSession("t1", "tr1", 10000)

	res, err := s.Add(pixMethod(), 6000, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), res.Allocation.AmountCents)
	assert.Equal(t, int64(4000), res.RemainingCents)
	assert.Equal(t, int64(4000), res.SuggestedCents)
	assert.Zero(t, res.ChangeCents)

	res, err = s.Add(cashMethod(), 5000, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), res.Allocation.AmountCents)
	assert.Equal(t, int64(1000), res.ChangeCents)
	assert.Zero(t, res.RemainingCents)
	assert.True(t, s.FullyPaid())
}

func TestRemainingConservation(t *testing.T) {
	s := NewSession("t1", "tr1", 12345)

	first, err := s.Add(cashMethod(), 2345, 1)
	require.NoError(t, err)
	second, err := s.Add(pixMethod(), 4000, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(6345), s.AllocatedCents())
	assert.Equal(t, int64(6000), s.RemainingCents())

	require.NoError(t, s.Remove(first.Allocation.ID))
	assert.Equal(t, int64(4000), s.AllocatedCents())
	assert.Equal(t, int64(8345), s.RemainingCents())

	require.NoError(t, s.Remove(second.Allocation.ID))
	assert.Equal(t, int64(12345), s.RemainingCents())
	assert.False(t, s.FullyPaid())
}

func TestRemoveClearsChange(t *testing.T) {
	s := NewSession("t1", "tr1", 1000)

	res, err := s.Add(cashMethod(), 1500, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), s.ChangeCents)

	require.NoError(t, s.Remove(res.Allocation.ID))
	assert.Zero(t, s.ChangeCents)
}

func TestRemoveUnknownAllocation(t *testing.T) {
	s := NewSession("t1", "tr1", 1000)
	assert.ErrorIs(t, s.Remove("nope"), ErrAllocationNotFound)
}

func TestZeroTargetIsImmediatelyFullyPaid(t *testing.T) {
	s := NewSession("t1", "tr1", 0)
	assert.True(t, s.FullyPaid())
}
