// Package money keeps all monetary arithmetic in integer cents.
// Decimal strings only appear at the HTTP and import boundaries.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// QtyScale is the fixed-point scale for quantities: 1000 mils = one unit.
const QtyScale = 1000

var (
	ErrBadAmount   = errors.New("invalid amount")
	ErrBadQuantity = errors.New("invalid quantity")
)

var centFactor = decimal.NewFromInt(100)

// ParseCents converts a decimal string like "60.00" into cents. Amounts
// with more than two fraction digits are rejected rather than rounded.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrBadAmount, s)
	}
	return d.Mul(centFactor).IntPart(), nil
}

// FormatCents renders cents as a two-decimal string ("6000" -> "60.00").
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centFactor).StringFixed(2)
}

// ParseQuantityMils converts a quantity string into mils ("1.5" -> 1500).
// At most three fraction digits are accepted.
func ParseQuantityMils(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadQuantity, s)
	}
	if d.Exponent() < -3 {
		return 0, fmt.Errorf("%w: %q has more than three decimal places", ErrBadQuantity, s)
	}
	return d.Mul(decimal.NewFromInt(QtyScale)).IntPart(), nil
}

// FormatQuantity renders mils as a quantity string without trailing zeros.
func FormatQuantity(mils int64) string {
	return decimal.NewFromInt(mils).Div(decimal.NewFromInt(QtyScale)).String()
}

// GrossCents computes unit price times quantity, rounding half up to a cent.
func GrossCents(unitPriceCents, quantityMils int64) int64 {
	return decimal.NewFromInt(unitPriceCents).
		Mul(decimal.NewFromInt(quantityMils)).
		Div(decimal.NewFromInt(QtyScale)).
		Round(0).
		IntPart()
}

// PercentDiscountCents computes pct% of gross, rounding half up to a cent.
// pct is clamped to [0,100].
func PercentDiscountCents(grossCents int64, pct decimal.Decimal) int64 {
	if pct.IsNegative() {
		pct = decimal.Zero
	}
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		pct = decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(grossCents).
		Mul(pct).
		Div(centFactor).
		Round(0).
		IntPart()
}

// LineTotalCents is gross minus discount, floored at zero.
func LineTotalCents(grossCents, discountCents int64) int64 {
	total := grossCents - discountCents
	if total < 0 {
		return 0
	}
	return total
}
