package commands

import (
	"causalmap/pkg/utils"
)

// AddEdgeCommand links two nodes with a causal relationship.
type AddEdgeCommand struct {
	GraphID     string `json:"-" validate:"required"`
	EdgeID      string `json:"id" validate:"required,max=128"`
	SourceID    string `json:"source_id" validate:"required"`
	TargetID    string `json:"target_id" validate:"required"`
	Polarity    string `json:"polarity" validate:"required,oneof=same opposite"`
	HasDelay    bool   `json:"has_delay"`
	Description string `json:"description" validate:"max=2000"`
}

func (c AddEdgeCommand) Validate() error { return utils.ValidateStruct(c) }

// UpdateEdgeCommand changes the given fields of an edge.
type UpdateEdgeCommand struct {
	GraphID     string  `json:"-" validate:"required"`
	EdgeID      string  `json:"-" validate:"required"`
	SourceID    *string `json:"source_id" validate:"omitempty,min=1"`
	TargetID    *string `json:"target_id" validate:"omitempty,min=1"`
	Polarity    *string `json:"polarity" validate:"omitempty,oneof=same opposite"`
	HasDelay    *bool   `json:"has_delay"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (c UpdateEdgeCommand) Validate() error { return utils.ValidateStruct(c) }

// RemoveEdgeCommand deletes an edge.
type RemoveEdgeCommand struct {
	GraphID string `json:"-" validate:"required"`
	EdgeID  string `json:"-" validate:"required"`
}

func (c RemoveEdgeCommand) Validate() error { return utils.ValidateStruct(c) }
