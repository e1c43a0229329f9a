package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.HandleFunc("/", s.app.PageHandler.ServeDashboard)
	mux.HandleFunc("/history", s.app.PageHandler.ServeHistory)
	mux.HandleFunc("/learn", s.app.PageHandler.ServeLearn)
	mux.HandleFunc("/learn/{slug}", s.app.PageHandler.ServeLesson)

	// Rendered charts
	mux.Handle("/charts/{file}", s.app.ChartHandler)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Prometheus metrics
	mux.Handle("/metrics", s.app.Metrics.Handler())

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/server-health", s.app.ServerHealthHandler.ServeHTTP)
	mux.Handle("/api/optimize", s.app.OptimizeHandler)
	mux.Handle("/api/history", s.app.HistoryHandler)
	mux.Handle("/api/tickers", s.app.TickersHandler)
	mux.HandleFunc("/api/learn", s.app.LearnHandler.ServeIndex)
	mux.HandleFunc("/api/learn/{slug}", s.app.LearnHandler.ServeLesson)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
