package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"60.00", 6000, false},
		{"60", 6000, false},
		{"0.5", 50, false},
		{" 19.99 ", 1999, false},
		{"-3.50", -350, false},
		{"1.999", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseCents(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCents(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(6000); got != "60.00" {
		t.Fatalf("FormatCents(6000) = %q", got)
	}
	if got := FormatCents(1); got != "0.01" {
		t.Fatalf("FormatCents(1) = %q", got)
	}
	if got := FormatCents(0); got != "0.00" {
		t.Fatalf("FormatCents(0) = %q", got)
	}
}

func TestParseQuantityMils(t *testing.T) {
	if got, err := ParseQuantityMils("1.5"); err != nil || got != 1500 {
		t.Fatalf("ParseQuantityMils(1.5) = %d, %v", got, err)
	}
	if got, err := ParseQuantityMils("2"); err != nil || got != 2000 {
		t.Fatalf("ParseQuantityMils(2) = %d, %v", got, err)
	}
	if _, err := ParseQuantityMils("1.0001"); err == nil {
		t.Fatalf("expected error for sub-mil quantity")
	}
}

func TestGrossCents(t *testing.T) {
	// 19.99 * 1.5 = 29.985 -> 29.99 (half up)
	if got := GrossCents(1999, 1500); got != 2999 {
		t.Fatalf("GrossCents(1999, 1500) = %d", got)
	}
	if got := GrossCents(1000, 2000); got != 2000 {
		t.Fatalf("GrossCents(1000, 2000) = %d", got)
	}
}

func TestPercentDiscountCents(t *testing.T) {
	ten := decimal.NewFromInt(10)
	if got := PercentDiscountCents(2999, ten); got != 300 {
		t.Fatalf("10%% of 2999 = %d, want 300", got)
	}
	// clamped above 100
	if got := PercentDiscountCents(500, decimal.NewFromInt(150)); got != 500 {
		t.Fatalf("over-100 pct not clamped, got %d", got)
	}
	// clamped below 0
	if got := PercentDiscountCents(500, decimal.NewFromInt(-5)); got != 0 {
		t.Fatalf("negative pct not clamped, got %d", got)
	}
}

func TestLineTotalCentsNeverNegative(t *testing.T) {
	if got := LineTotalCents(100, 250); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
	if got := LineTotalCents(250, 100); got != 150 {
		t.Fatalf("expected 150, got %d", got)
	}
}
