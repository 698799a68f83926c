package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"causalmap/application/commands"
	"causalmap/application/queries"
	querybus "causalmap/application/queries/bus"
	"causalmap/pkg/common"
)

// GraphHandler handles graph-level HTTP requests.
type GraphHandler struct {
	base
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(d Deps) *GraphHandler {
	return &GraphHandler{base: newBase(d)}
}

// CreateGraph handles POST /graphs
func (h *GraphHandler) CreateGraph(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateGraphCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.GraphID = idOrNew(cmd.GraphID)

	if !h.send(w, r, cmd) {
		return
	}

	view, err := h.graph(r.Context(), cmd.GraphID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/graphs/"+cmd.GraphID)
	h.respond(w, r, http.StatusCreated, view)
}

// ListGraphs handles GET /graphs
func (h *GraphHandler) ListGraphs(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)
	page, err := querybus.Ask[*common.PaginatedResult[queries.GraphSummaryView]](r.Context(), h.queryBus,
		queries.ListGraphsQuery{Page: params.Page, PageSize: params.PageSize})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	meta := common.NewMeta(r)
	meta.Pagination = page.Pagination
	common.RespondWithMeta(w, http.StatusOK, page.Items, meta)
}

// GetGraph handles GET /graphs/{graphID}
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	view, err := h.graph(r.Context(), chi.URLParam(r, "graphID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// DeleteGraph handles DELETE /graphs/{graphID}
func (h *GraphHandler) DeleteGraph(w http.ResponseWriter, r *http.Request) {
	if h.send(w, r, commands.DeleteGraphCommand{GraphID: chi.URLParam(r, "graphID")}) {
		common.RespondNoContent(w)
	}
}

// ClearGraph handles POST /graphs/{graphID}/clear
func (h *GraphHandler) ClearGraph(w http.ResponseWriter, r *http.Request) {
	graphID := chi.URLParam(r, "graphID")
	if !h.send(w, r, commands.ClearGraphCommand{GraphID: graphID}) {
		return
	}
	h.respondGraph(w, r, graphID, http.StatusOK)
}

// ApplyArchetype handles POST /graphs/{graphID}/archetypes/{archetypeID}
func (h *GraphHandler) ApplyArchetype(w http.ResponseWriter, r *http.Request) {
	graphID := chi.URLParam(r, "graphID")
	cmd := commands.ApplyArchetypeCommand{
		GraphID:     graphID,
		ArchetypeID: chi.URLParam(r, "archetypeID"),
	}
	if !h.send(w, r, cmd) {
		return
	}
	h.respondGraph(w, r, graphID, http.StatusOK)
}

func (h *GraphHandler) respondGraph(w http.ResponseWriter, r *http.Request, graphID string, status int) {
	view, err := h.graph(r.Context(), graphID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, r, status, view)
}
