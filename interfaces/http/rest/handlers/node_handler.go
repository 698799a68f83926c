package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"causalmap/application/commands"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	base
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(d Deps) *NodeHandler {
	return &NodeHandler{base: newBase(d)}
}

// CreateNode handles POST /graphs/{graphID}/nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddNodeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.GraphID = chi.URLParam(r, "graphID")
	cmd.NodeID = idOrNew(cmd.NodeID)

	if h.send(w, r, cmd) {
		h.respondNode(w, r, cmd.GraphID, cmd.NodeID, http.StatusCreated)
	}
}

// CreateNodeFromFactor handles POST /graphs/{graphID}/factors/{factorID}/node
func (h *NodeHandler) CreateNodeFromFactor(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddNodeFromFactorCommand
	if r.ContentLength != 0 {
		if err := h.decode(w, r, &cmd); err != nil {
			h.errors.Handle(w, r, err)
			return
		}
	}
	cmd.GraphID = chi.URLParam(r, "graphID")
	cmd.FactorID = chi.URLParam(r, "factorID")
	cmd.NodeID = idOrNew(cmd.NodeID)

	if h.send(w, r, cmd) {
		h.respondNode(w, r, cmd.GraphID, cmd.NodeID, http.StatusCreated)
	}
}

// UpdateNode handles PATCH /graphs/{graphID}/nodes/{nodeID}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateNodeCommand
	if err := h.decode(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.GraphID = chi.URLParam(r, "graphID")
	cmd.NodeID = chi.URLParam(r, "nodeID")

	if h.send(w, r, cmd) {
		h.respondNode(w, r, cmd.GraphID, cmd.NodeID, http.StatusOK)
	}
}

// DeleteNode handles DELETE /graphs/{graphID}/nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	cmd := commands.RemoveNodeCommand{
		GraphID: chi.URLParam(r, "graphID"),
		NodeID:  chi.URLParam(r, "nodeID"),
	}
	if h.send(w, r, cmd) {
		common.RespondNoContent(w)
	}
}

func (h *NodeHandler) respondNode(w http.ResponseWriter, r *http.Request, graphID, nodeID string, status int) {
	view, err := h.graph(r.Context(), graphID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	for _, n := range view.Nodes {
		if n.ID == nodeID {
			h.respond(w, r, status, n)
			return
		}
	}
	h.errors.Handle(w, r, pkgerrors.NewNotFoundError("node "+nodeID))
}
