package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/rpgo/finplan/internal/common"
	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/internal/output"
	"github.com/rpgo/finplan/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": common.GetVersion(),
	})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, common.GetVersionInfo())
}

type calculatorInfo struct {
	Kind    domain.CalculatorKind `json:"kind"`
	Title   string                `json:"title"`
	Example any                   `json:"example"`
}

func (s *Server) handleCalculatorList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	parser := config.NewInputParser()
	kinds := domain.CalculatorKinds()
	list := make([]calculatorInfo, 0, len(kinds))
	for _, k := range kinds {
		example, err := parser.CreateExample(k)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		list = append(list, calculatorInfo{Kind: k, Title: k.Title(), Example: example})
	}
	WriteJSON(w, http.StatusOK, map[string]any{"calculators": list})
}

// runCalculator decodes the request body over the calculator defaults and
// runs it. It writes the error response itself and returns false on failure.
func (s *Server) runCalculator(w http.ResponseWriter, r *http.Request) (any, bool) {
	kind, err := domain.ParseCalculatorKind(r.PathValue("kind"))
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return nil, false
	}

	ctx := r.Context()
	var result any
	switch kind {
	case domain.KindMortgage:
		in := domain.DefaultMortgageInput()
		if !DecodeJSON(w, r, &in) {
			return nil, false
		}
		result, err = unwrap(s.service.Mortgage(ctx, in))
	case domain.KindCompoundInterest:
		in := domain.DefaultCompoundInterestInput()
		if !DecodeJSON(w, r, &in) {
			return nil, false
		}
		result, err = unwrap(s.service.CompoundInterest(ctx, in))
	case domain.KindRetirement:
		in := domain.DefaultRetirementInput()
		if !DecodeJSON(w, r, &in) {
			return nil, false
		}
		result, err = unwrap(s.service.Retirement(ctx, in))
	case domain.KindNetWorth:
		var in domain.NetWorthInput
		if !DecodeJSON(w, r, &in) {
			return nil, false
		}
		result, err = unwrap(s.service.NetWorth(ctx, in))
	}
	if err != nil {
		s.writeCalculationError(w, r, err)
		return nil, false
	}
	return result, true
}

// unwrap widens a typed result to any without turning a nil pointer into a
// non-nil interface.
func unwrap[R any](r *R, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

// handleCalculate answers with the result as JSON, or as CSV or plain text
// when ?format= asks for it.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	format := r.URL.Query().Get("format")
	var formatter output.Formatter
	if format != "" && output.NormalizeFormatName(format) != "json" {
		f, err := output.GetFormatterByName(format)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		formatter = f
	}

	result, ok := s.runCalculator(w, r)
	if !ok {
		return
	}
	if formatter == nil {
		WriteJSON(w, http.StatusOK, result)
		return
	}

	doc, err := output.FromResult(result)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	data, err := formatter.Format(doc)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	contentType := "text/plain; charset=utf-8"
	if formatter.Name() == "csv" {
		contentType = "text/csv; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	result, ok := s.runCalculator(w, r)
	if !ok {
		return
	}
	doc, err := output.FromResult(result)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	png, err := output.RenderChart(doc)
	if err != nil {
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "chart"})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

type snapshotRequest struct {
	Label string               `json:"label"`
	Input domain.NetWorthInput `json:"input"`
}

type snapshotResponse struct {
	Snapshot *domain.NetWorthSnapshot `json:"snapshot"`
	Result   *domain.NetWorthResult   `json:"result"`
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}
		list, err := s.service.ListSnapshots(r.Context(), limit)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		if list == nil {
			list = []domain.NetWorthSnapshot{}
		}
		WriteJSON(w, http.StatusOK, map[string]any{"snapshots": list})
		return
	}

	var req snapshotRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	snapshot, result, err := s.service.SaveSnapshot(r.Context(), req.Label, req.Input)
	if err != nil {
		s.writeCalculationError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/net-worth/snapshots/"+snapshot.ID)
	WriteJSON(w, http.StatusCreated, snapshotResponse{Snapshot: snapshot, Result: result})
}

func (s *Server) handleSnapshotGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	snapshot, err := s.service.GetSnapshot(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrSnapshotNotFound) {
		WriteError(w, http.StatusNotFound, "Snapshot not found")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}

// writeCalculationError maps domain errors onto status codes.
func (s *Server) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: ve.Error(),
			Kind:  string(domain.KindValidation),
			Field: ve.Field,
		})
		return
	}
	if ce, ok := domain.AsComputation(err); ok {
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:     ce.Error(),
			Kind:      string(domain.KindComputation),
			Operation: ce.Operation,
		})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		WriteError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	s.internalError(w, r, err)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	id := writeInternalError(w)
	s.logger.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("error_id", id).
		Msg("Request failed")
}
