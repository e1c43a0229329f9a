package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bobmcallan/allocation-lab/internal/models"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	codes []int
}

func (r *recordingObserver) ObserveRequest(endpoint string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, endpoint)
	r.codes = append(r.codes, status)
}

func TestOptimize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/optimize" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["profile"] != "balanced" || body["btc_max"] != 0.15 {
			t.Errorf("unexpected body: %v", body)
		}
		w.Write([]byte(`{"weights":[{"ticker":"VTI","asset_class":"equity","name":"Total Market","weight":0.3}],
			"risk_metrics":{"vol_annual":0.12,"sharpe":1.1,"beta_spy":0.7},
			"constraints_summary":{"btc_cap":0.15,"budgets_profile":"balanced"},
			"risk_contributions":[{"ticker":"VTI","contribution_pct":55.5}]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewLabClient(srv.URL, time.Second, WithObserver(obs))
	resp, err := c.Optimize(context.Background(), models.DefaultOptimizeRequest())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(resp.Weights) != 1 || resp.Weights[0].Ticker != "VTI" {
		t.Errorf("unexpected weights: %+v", resp.Weights)
	}
	if resp.RiskMetrics.BetaSPY != 0.7 {
		t.Errorf("expected beta 0.7, got %v", resp.RiskMetrics.BetaSPY)
	}
	if resp.RiskContributions[0].ContributionPct != 55.5 {
		t.Errorf("unexpected contributions: %+v", resp.RiskContributions)
	}
	if len(obs.calls) != 1 || obs.calls[0] != "/optimize" || obs.codes[0] != 200 {
		t.Errorf("unexpected observations: %v %v", obs.calls, obs.codes)
	}
}

func TestOptimize_InvalidRequestNotSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewLabClient(srv.URL, time.Second)
	req := models.DefaultOptimizeRequest()
	req.BTCMax = 0.9
	if _, err := c.Optimize(context.Background(), req); err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Error("invalid request should not reach the optimizer")
	}
}

func TestFrontier_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "solver failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewLabClient(srv.URL, time.Second)
	_, err := c.Frontier(context.Background(), models.DefaultOptimizeRequest())
	if err == nil {
		t.Fatal("expected error")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.Code != 500 {
		t.Errorf("expected 500, got %d", se.Code)
	}
	if !strings.HasPrefix(err.Error(), "500 Internal Server Error: solver failed") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTickers_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewLabClient(srv.URL, time.Second)
	_, err := c.Tickers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to parse response") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestAssetHistory_NormalizesAndEscapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/asset-history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("ticker"); got != "BRK.B&X" {
			t.Errorf("expected ticker BRK.B&X, got %q", got)
		}
		if got := r.URL.Query().Get("range"); got != "5y" {
			t.Errorf("expected range 5y, got %q", got)
		}
		w.Write([]byte(`{"ticker":"BRK.B&X","name":"Test","range_years":5,
			"prices":[{"date":"2020-01-01","price":100,"drawdown":0}],
			"stats":{"cagr":0.08,"worst_month":-0.1},"events":[]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewLabClient(srv.URL+"/", time.Second, WithObserver(obs))
	resp, err := c.AssetHistory(context.Background(), " brk.b&x ", models.Range5Y)
	if err != nil {
		t.Fatalf("AssetHistory: %v", err)
	}
	if resp.RangeYears != 5 || resp.Stats.WorstMonth != -0.1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if obs.calls[0] != "/asset-history" {
		t.Errorf("expected endpoint without query, got %q", obs.calls[0])
	}
}

func TestAssetHistory_InvalidRange(t *testing.T) {
	c := NewLabClient("http://127.0.0.1:1", time.Second)
	if _, err := c.AssetHistory(context.Background(), "SPY", "10y"); err == nil {
		t.Fatal("expected error for unknown range")
	}
}

func TestHealth_Unreachable(t *testing.T) {
	obs := &recordingObserver{}
	c := NewLabClient("http://127.0.0.1:1", 500*time.Millisecond, WithObserver(obs))
	_, err := c.Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to reach optimizer") {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(obs.codes) != 1 || obs.codes[0] != 0 {
		t.Errorf("expected status 0 observation, got %v", obs.codes)
	}
}

func TestHealth_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","version":"2.0.0"}`))
	}))
	defer srv.Close()

	h, err := NewLabClient(srv.URL, 0).Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "ok" || h.Version != "2.0.0" {
		t.Errorf("unexpected health: %+v", h)
	}
}

func TestBaseURL_TrimsTrailingSlash(t *testing.T) {
	if got := NewLabClient("http://x:8000/", 0).BaseURL(); got != "http://x:8000" {
		t.Errorf("got %q", got)
	}
}
