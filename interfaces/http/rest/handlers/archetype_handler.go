package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"causalmap/application/queries"
	querybus "causalmap/application/queries/bus"
	"causalmap/domain/archetypes"
)

// ArchetypeHandler serves the system archetype catalogue.
type ArchetypeHandler struct {
	base
}

// NewArchetypeHandler creates a new archetype handler
func NewArchetypeHandler(d Deps) *ArchetypeHandler {
	return &ArchetypeHandler{base: newBase(d)}
}

// ListArchetypes handles GET /archetypes
func (h *ArchetypeHandler) ListArchetypes(w http.ResponseWriter, r *http.Request) {
	list, err := querybus.Ask[[]archetypes.Archetype](r.Context(), h.queryBus, queries.ListArchetypesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, list)
}

// GetArchetype handles GET /archetypes/{archetypeID}
func (h *ArchetypeHandler) GetArchetype(w http.ResponseWriter, r *http.Request) {
	a, err := querybus.Ask[archetypes.Archetype](r.Context(), h.queryBus,
		queries.GetArchetypeQuery{ArchetypeID: chi.URLParam(r, "archetypeID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, a)
}
