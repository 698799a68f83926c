package entities

import (
	"time"

	"causalmap/domain/core/valueobjects"
	pkgerrors "causalmap/pkg/errors"
)

// Edge is a directed causal link from source to target.
type Edge struct {
	id          valueobjects.EdgeID
	sourceID    valueobjects.NodeID
	targetID    valueobjects.NodeID
	polarity    valueobjects.Polarity
	hasDelay    bool
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// EdgePatch carries the fields of a partial edge update. Endpoint changes are
// checked against the graph by the aggregate.
type EdgePatch struct {
	SourceID    *valueobjects.NodeID
	TargetID    *valueobjects.NodeID
	Polarity    *valueobjects.Polarity
	HasDelay    *bool
	Description *string
}

// NewEdge creates a causal link. Whether the endpoints exist is the graph's
// concern, not the edge's.
func NewEdge(id valueobjects.EdgeID, source, target valueobjects.NodeID, polarity valueobjects.Polarity, hasDelay bool) (*Edge, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("edge ID cannot be empty")
	}
	if source.IsZero() || target.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}
	if _, err := valueobjects.ParsePolarity(string(polarity)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Edge{
		id:        id,
		sourceID:  source,
		targetID:  target,
		polarity:  polarity,
		hasDelay:  hasDelay,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// WithDescription sets the free-text note on the link.
func (e *Edge) WithDescription(description string) *Edge {
	e.description = description
	return e
}

func (e *Edge) ID() valueobjects.EdgeID         { return e.id }
func (e *Edge) SourceID() valueobjects.NodeID   { return e.sourceID }
func (e *Edge) TargetID() valueobjects.NodeID   { return e.targetID }
func (e *Edge) Polarity() valueobjects.Polarity { return e.polarity }
func (e *Edge) HasDelay() bool                  { return e.hasDelay }
func (e *Edge) Description() string             { return e.description }
func (e *Edge) CreatedAt() time.Time            { return e.createdAt }
func (e *Edge) UpdatedAt() time.Time            { return e.updatedAt }

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e *Edge) IsSelfLoop() bool {
	return e.sourceID.Equals(e.targetID)
}

// Touches reports whether the node is either endpoint.
func (e *Edge) Touches(id valueobjects.NodeID) bool {
	return e.sourceID.Equals(id) || e.targetID.Equals(id)
}

// Patched returns a copy of the edge with the patch applied, leaving the
// receiver untouched so the caller can check references before committing.
func (e *Edge) Patched(patch EdgePatch) (*Edge, error) {
	c := e.Clone()
	if patch.SourceID != nil {
		if patch.SourceID.IsZero() {
			return nil, pkgerrors.NewValidationError("edge source cannot be empty")
		}
		c.sourceID = *patch.SourceID
	}
	if patch.TargetID != nil {
		if patch.TargetID.IsZero() {
			return nil, pkgerrors.NewValidationError("edge target cannot be empty")
		}
		c.targetID = *patch.TargetID
	}
	if patch.Polarity != nil {
		p, err := valueobjects.ParsePolarity(string(*patch.Polarity))
		if err != nil {
			return nil, err
		}
		c.polarity = p
	}
	if patch.HasDelay != nil {
		c.hasDelay = *patch.HasDelay
	}
	if patch.Description != nil {
		c.description = *patch.Description
	}
	c.updatedAt = time.Now()
	return c, nil
}

// Clone returns an independent copy of the edge.
func (e *Edge) Clone() *Edge {
	c := *e
	return &c
}
