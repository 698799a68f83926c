package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"causalmap/application/commands"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

// FactorHandler handles SWOT factor requests.
type FactorHandler struct {
	base
}

// NewFactorHandler creates a new factor handler
func NewFactorHandler(d Deps) *FactorHandler {
	return &FactorHandler{base: newBase(d)}
}

// CreateFactor handles POST /graphs/{graphID}/factors
func (h *FactorHandler) CreateFactor(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddFactorCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.GraphID = chi.URLParam(r, "graphID")
	cmd.FactorID = idOrNew(cmd.FactorID)

	if h.send(w, r, cmd) {
		h.respondFactor(w, r, cmd.GraphID, cmd.FactorID, http.StatusCreated)
	}
}

// UpdateFactor handles PATCH /graphs/{graphID}/factors/{factorID}
func (h *FactorHandler) UpdateFactor(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateFactorCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.GraphID = chi.URLParam(r, "graphID")
	cmd.FactorID = chi.URLParam(r, "factorID")

	if h.send(w, r, cmd) {
		h.respondFactor(w, r, cmd.GraphID, cmd.FactorID, http.StatusOK)
	}
}

// DeleteFactor handles DELETE /graphs/{graphID}/factors/{factorID}
func (h *FactorHandler) DeleteFactor(w http.ResponseWriter, r *http.Request) {
	cmd := commands.RemoveFactorCommand{
		GraphID:  chi.URLParam(r, "graphID"),
		FactorID: chi.URLParam(r, "factorID"),
	}
	if h.send(w, r, cmd) {
		common.RespondNoContent(w)
	}
}

func (h *FactorHandler) respondFactor(w http.ResponseWriter, r *http.Request, graphID, factorID string, status int) {
	view, err := h.graph(r.Context(), graphID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	for _, f := range view.Factors {
		if f.ID == factorID {
			h.respond(w, r, status, f)
			return
		}
	}
	h.errors.Handle(w, r, pkgerrors.NewNotFoundError("factor "+factorID))
}
