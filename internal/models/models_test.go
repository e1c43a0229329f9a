package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOptimizeRequest_DefaultIsValid(t *testing.T) {
	if err := DefaultOptimizeRequest().Validate(); err != nil {
		t.Fatalf("default request should be valid: %v", err)
	}
}

func TestOptimizeRequest_ValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OptimizeRequest)
		wantErr string
	}{
		{"unknown profile", func(r *OptimizeRequest) { r.Profile = "yolo" }, "profile"},
		{"btc too high", func(r *OptimizeRequest) { r.BTCMax = 0.31 }, "btc_max"},
		{"negative cash", func(r *OptimizeRequest) { r.CashMax = -0.01 }, "cash_max"},
		{"per asset too low", func(r *OptimizeRequest) { r.PerAssetMax = 0.04 }, "per_asset_max"},
		{"per asset too high", func(r *OptimizeRequest) { r.PerAssetMax = 0.41 }, "per_asset_max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DefaultOptimizeRequest()
			tt.mutate(&req)
			err := req.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOptimizeRequest_EdgeValuesAccepted(t *testing.T) {
	req := OptimizeRequest{Profile: ProfileGrowth, BTCMax: 0, CashMax: 0.3, PerAssetMax: 0.05}
	if err := req.Validate(); err != nil {
		t.Errorf("expected edge values to be accepted, got %v", err)
	}
}

func TestOptimizeRequest_WireFieldNames(t *testing.T) {
	data, err := json.Marshal(DefaultOptimizeRequest())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{`"profile":"balanced"`, `"btc_max":0.15`, `"cash_max":0.2`, `"per_asset_max":0.35`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in %s", field, data)
		}
	}
}

func TestValidateHistoryQuery(t *testing.T) {
	if err := ValidateHistoryQuery(" spy ", Range3Y); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateHistoryQuery("", Range1Y); err == nil {
		t.Error("expected error for empty ticker")
	}
	if err := ValidateHistoryQuery("SPY", "10y"); err == nil {
		t.Error("expected error for unknown range")
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  btc "); got != "BTC" {
		t.Errorf("expected BTC, got %q", got)
	}
}

func TestHistoryRange_Label(t *testing.T) {
	if Range5Y.Label() != "5 Years" {
		t.Errorf("unexpected label %q", Range5Y.Label())
	}
	if HistoryRange("7y").Label() != "7y" {
		t.Error("unknown ranges should fall back to their raw value")
	}
}
