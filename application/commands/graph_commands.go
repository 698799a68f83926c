// Package commands holds the write side of the application: one command per
// graph mutation, validated with struct tags before dispatch.
package commands

import (
	"causalmap/pkg/utils"
)

// CreateGraphCommand creates an empty analysis graph.
type CreateGraphCommand struct {
	GraphID     string `json:"id" validate:"required,max=128"`
	Name        string `json:"name" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
}

func (c CreateGraphCommand) Validate() error { return utils.ValidateStruct(c) }

// DeleteGraphCommand removes a graph and its stored analysis.
type DeleteGraphCommand struct {
	GraphID string `json:"-" validate:"required"`
}

func (c DeleteGraphCommand) Validate() error { return utils.ValidateStruct(c) }

// ClearGraphCommand drops every node, edge and factor of a graph.
type ClearGraphCommand struct {
	GraphID string `json:"-" validate:"required"`
}

func (c ClearGraphCommand) Validate() error { return utils.ValidateStruct(c) }

// ApplyArchetypeCommand adds a system archetype template to a graph.
type ApplyArchetypeCommand struct {
	GraphID     string `json:"-" validate:"required"`
	ArchetypeID string `json:"-" validate:"required"`
}

func (c ApplyArchetypeCommand) Validate() error { return utils.ValidateStruct(c) }
