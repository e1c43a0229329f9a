package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobmcallan/allocation-lab/internal/client"
	"github.com/bobmcallan/allocation-lab/internal/models"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// upstreamStatus maps an optimizer failure to the portal's response code.
func upstreamStatus(err error) int {
	var se *client.StatusError
	if errors.As(err, &se) && se.Code == http.StatusBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// parseOptimizeForm overlays the optimize fields present in values onto base.
func parseOptimizeForm(values url.Values, base models.OptimizeRequest) (models.OptimizeRequest, error) {
	req := base
	if p := values.Get("profile"); p != "" {
		req.Profile = models.Profile(p)
	}
	fields := []struct {
		key string
		dst *float64
	}{
		{"btc_max", &req.BTCMax},
		{"cash_max", &req.CashMax},
		{"per_asset_max", &req.PerAssetMax},
	}
	for _, f := range fields {
		raw := values.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return base, fmt.Errorf("%s: %q is not a number", f.key, raw)
		}
		*f.dst = v
	}
	return req, req.Validate()
}

// hasOptimizeFields reports whether values carries any optimize parameter.
func hasOptimizeFields(values url.Values) bool {
	for _, k := range []string{"profile", "btc_max", "cash_max", "per_asset_max"} {
		if values.Has(k) {
			return true
		}
	}
	return false
}
