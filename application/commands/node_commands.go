package commands

import (
	"causalmap/pkg/utils"
)

// AddNodeCommand places a variable on the diagram.
type AddNodeCommand struct {
	GraphID  string `json:"-" validate:"required"`
	NodeID   string `json:"id" validate:"required,max=128"`
	Label    string `json:"label" validate:"required"`
	Category string `json:"category" validate:"required,oneof=strength weakness opportunity threat"`
	Kind     string `json:"kind" validate:"required,oneof=stock flow decision"`
}

func (c AddNodeCommand) Validate() error { return utils.ValidateStruct(c) }

// UpdateNodeCommand changes the given fields of a node.
type UpdateNodeCommand struct {
	GraphID  string  `json:"-" validate:"required"`
	NodeID   string  `json:"-" validate:"required"`
	Label    *string `json:"label" validate:"omitempty,min=1"`
	Category *string `json:"category" validate:"omitempty,oneof=strength weakness opportunity threat"`
	Kind     *string `json:"kind" validate:"omitempty,oneof=stock flow decision"`
}

func (c UpdateNodeCommand) Validate() error { return utils.ValidateStruct(c) }

// RemoveNodeCommand deletes a node and every edge touching it.
type RemoveNodeCommand struct {
	GraphID string `json:"-" validate:"required"`
	NodeID  string `json:"-" validate:"required"`
}

func (c RemoveNodeCommand) Validate() error { return utils.ValidateStruct(c) }

// AddNodeFromFactorCommand places a factor on the diagram as a node.
type AddNodeFromFactorCommand struct {
	GraphID  string `json:"-" validate:"required"`
	FactorID string `json:"-" validate:"required"`
	NodeID   string `json:"id" validate:"required,max=128"`
}

func (c AddNodeFromFactorCommand) Validate() error { return utils.ValidateStruct(c) }
