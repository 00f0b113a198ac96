package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFundThousands(t *testing.T) {
	tests := []struct {
		usd  string
		want string
	}{
		{"30000000", "30000"},
		{"30000499", "30000"},
		{"30000500", "30001"},
		{"1234", "1"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got := FundThousands(d(tt.usd))
		if !got.Equal(d(tt.want)) {
			t.Errorf("FundThousands(%s) = %s, want %s", tt.usd, got, tt.want)
		}
	}
}

func TestThousandsKeepsFraction(t *testing.T) {
	got := Thousands(d("30000499"))
	if !got.Equal(d("30000.499")) {
		t.Errorf("Thousands = %s, want 30000.499", got)
	}
}

func TestCompare_Rise(t *testing.T) {
	got := Compare(d("2.2"), d("33000"), d("2.0"), d("30000"), d("10000"))
	if !got.Positive {
		t.Error("expected positive direction")
	}
	if !got.Nav.Equal(d("0.2")) {
		t.Errorf("nav delta = %s, want 0.2", got.Nav)
	}
	if !got.Stake.Equal(d("2000")) {
		t.Errorf("stake delta = %s, want 2000", got.Stake)
	}
	if !got.Fund.Equal(d("3000")) {
		t.Errorf("fund delta = %s, want 3000", got.Fund)
	}
}

func TestCompare_Fall(t *testing.T) {
	got := Compare(d("1.9"), d("29000"), d("2.0"), d("30000"), d("100"))
	if got.Positive {
		t.Error("expected negative direction")
	}
	if !got.Nav.Equal(d("-0.1")) {
		t.Errorf("nav delta = %s, want -0.1", got.Nav)
	}
	if !got.Stake.Equal(d("-10")) {
		t.Errorf("stake delta = %s, want -10", got.Stake)
	}
}

func TestCompare_EqualIsNotPositive(t *testing.T) {
	got := Compare(d("2.0"), d("1"), d("2.00"), d("1"), d("10"))
	if got.Positive {
		t.Error("equal NAV must not be positive")
	}
	if !got.Nav.IsZero() {
		t.Errorf("nav delta = %s, want 0", got.Nav)
	}
}
