package server

import "net/http"

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/api/version", s.handleVersion)

	mux.HandleFunc("/api/v1/calculators", s.handleCalculatorList)
	mux.HandleFunc("/api/v1/calculators/{kind}", s.handleCalculate)
	mux.HandleFunc("/api/v1/calculators/{kind}/chart", s.handleChart)

	mux.HandleFunc("/api/v1/net-worth/snapshots", s.handleSnapshots)
	mux.HandleFunc("/api/v1/net-worth/snapshots/{id}", s.handleSnapshotGet)
}
