package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/allocation-lab/internal/models"
)

// StatusError is returned when the optimizer answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Code, e.Status, e.Body)
}

// RequestObserver receives the outcome of every upstream call.
// Status is 0 when the optimizer could not be reached.
type RequestObserver interface {
	ObserveRequest(endpoint string, status int, elapsed time.Duration)
}

// Option configures a LabClient.
type Option func(*LabClient)

// WithObserver attaches a request observer.
func WithObserver(o RequestObserver) Option {
	return func(c *LabClient) { c.observer = o }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *LabClient) { c.httpClient = hc }
}

// LabClient communicates with the optimizer REST API.
type LabClient struct {
	baseURL    string
	httpClient *http.Client
	observer   RequestObserver
}

// NewLabClient creates a new client targeting the given optimizer URL.
func NewLabClient(baseURL string, timeout time.Duration, opts ...Option) *LabClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &LabClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the optimizer base URL.
func (c *LabClient) BaseURL() string {
	return c.baseURL
}

// Optimize runs the constrained optimizer.
// POST /optimize -> OptimizeResponse
func (c *LabClient) Optimize(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.OptimizeResponse
	if err := c.post(ctx, "/optimize", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Frontier computes the efficient frontier for the same parameters as Optimize.
// POST /frontier -> FrontierResponse
func (c *LabClient) Frontier(ctx context.Context, req models.OptimizeRequest) (*models.FrontierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.FrontierResponse
	if err := c.post(ctx, "/frontier", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tickers fetches the static ticker catalog.
// GET /tickers -> []TickerMeta
func (c *LabClient) Tickers(ctx context.Context) ([]models.TickerMeta, error) {
	var out []models.TickerMeta
	if err := c.get(ctx, "/tickers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssetHistory fetches the simulated price history of one ticker.
// GET /asset-history?ticker=&range= -> AssetHistoryResponse
func (c *LabClient) AssetHistory(ctx context.Context, ticker string, r models.HistoryRange) (*models.AssetHistoryResponse, error) {
	if err := models.ValidateHistoryQuery(ticker, r); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("ticker", models.NormalizeTicker(ticker))
	q.Set("range", string(r))

	var out models.AssetHistoryResponse
	if err := c.get(ctx, "/asset-history?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the optimizer.
// GET /health -> {status, version}
func (c *LabClient) Health(ctx context.Context) (*models.BackendHealth, error) {
	var out models.BackendHealth
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LabClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, endpointName(path), out)
}

func (c *LabClient) post(ctx context.Context, path string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, endpointName(path), out)
}

func (c *LabClient) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0, start)
		return fmt.Errorf("failed to reach optimizer: %w", err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode, start)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
			Body:   string(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *LabClient) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, status, time.Since(start))
	}
}

// endpointName strips the query string so metric labels stay bounded.
func endpointName(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
