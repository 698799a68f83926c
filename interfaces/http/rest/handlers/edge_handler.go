package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"causalmap/application/commands"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	base
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(d Deps) *EdgeHandler {
	return &EdgeHandler{base: newBase(d)}
}

// CreateEdge handles POST /graphs/{graphID}/edges
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddEdgeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.GraphID = chi.URLParam(r, "graphID")
	cmd.EdgeID = idOrNew(cmd.EdgeID)

	if h.send(w, r, cmd) {
		h.respondEdge(w, r, cmd.GraphID, cmd.EdgeID, http.StatusCreated)
	}
}

// UpdateEdge handles PATCH /graphs/{graphID}/edges/{edgeID}
func (h *EdgeHandler) UpdateEdge(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateEdgeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.GraphID = chi.URLParam(r, "graphID")
	cmd.EdgeID = chi.URLParam(r, "edgeID")

	if h.send(w, r, cmd) {
		h.respondEdge(w, r, cmd.GraphID, cmd.EdgeID, http.StatusOK)
	}
}

// DeleteEdge handles DELETE /graphs/{graphID}/edges/{edgeID}
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	cmd := commands.RemoveEdgeCommand{
		GraphID: chi.URLParam(r, "graphID"),
		EdgeID:  chi.URLParam(r, "edgeID"),
	}
	if h.send(w, r, cmd) {
		common.RespondNoContent(w)
	}
}

func (h *EdgeHandler) respondEdge(w http.ResponseWriter, r *http.Request, graphID, edgeID string, status int) {
	view, err := h.graph(r.Context(), graphID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	for _, e := range view.Edges {
		if e.ID == edgeID {
			h.respond(w, r, status, e)
			return
		}
	}
	h.errors.Handle(w, r, pkgerrors.NewNotFoundError("edge "+edgeID))
}
