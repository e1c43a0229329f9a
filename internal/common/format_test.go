package common

import "testing"

func TestFormatPct(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{0.1234, 1, "12.3%"},
		{-0.185, 1, "-18.5%"},
		{0.15, 0, "15%"},
		{0, 1, "0.0%"},
	}
	for _, tt := range tests {
		if got := FormatPct(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatPct(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(1.234); got != "1.23" {
		t.Errorf("FormatRatio(1.234) = %q, want 1.23", got)
	}
	if got := FormatRatio(-0.5); got != "-0.50" {
		t.Errorf("FormatRatio(-0.5) = %q, want -0.50", got)
	}
}

func TestFormatClass(t *testing.T) {
	if got := FormatClass("intl_equity"); got != "intl equity" {
		t.Errorf("got %q", got)
	}
	if got := FormatClass("fixed_income"); got != "fixed income" {
		t.Errorf("got %q", got)
	}
	if got := FormatClass("cash"); got != "cash" {
		t.Errorf("got %q", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(12.345, 1); got != 12.3 {
		t.Errorf("Round(12.345, 1) = %v", got)
	}
	if got := Round(-30.327, 1); got != -30.3 {
		t.Errorf("Round(-30.327, 1) = %v", got)
	}
	if got := Round(0.12345, 3); got != 0.123 {
		t.Errorf("Round(0.12345, 3) = %v", got)
	}
}
