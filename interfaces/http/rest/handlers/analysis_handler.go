package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"causalmap/application/queries"
	querybus "causalmap/application/queries/bus"
	"causalmap/domain/analysis"
)

// AnalysisHandler serves loop, leverage point and option results.
type AnalysisHandler struct {
	base
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(d Deps) *AnalysisHandler {
	return &AnalysisHandler{base: newBase(d)}
}

// GetAnalysis handles GET /graphs/{graphID}/analysis
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *analysis.Snapshot) interface{} { return s })
}

// GetLoops handles GET /graphs/{graphID}/loops
func (h *AnalysisHandler) GetLoops(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *analysis.Snapshot) interface{} { return s.Loops })
}

// GetLeveragePoints handles GET /graphs/{graphID}/leverage-points
func (h *AnalysisHandler) GetLeveragePoints(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *analysis.Snapshot) interface{} { return s.LeveragePoints })
}

// GetOptions handles GET /graphs/{graphID}/options
func (h *AnalysisHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *analysis.Snapshot) interface{} { return s.Options })
}

func (h *AnalysisHandler) serve(w http.ResponseWriter, r *http.Request, pick func(*analysis.Snapshot) interface{}) {
	snapshot, err := querybus.Ask[*analysis.Snapshot](r.Context(), h.queryBus,
		queries.GetAnalysisQuery{GraphID: chi.URLParam(r, "graphID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, pick(snapshot))
}
