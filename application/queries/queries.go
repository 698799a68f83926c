// Package queries holds the read side of the application.
package queries

import (
	"causalmap/pkg/utils"
)

// GetGraphQuery loads one graph with its nodes, edges and factors.
type GetGraphQuery struct {
	GraphID string `validate:"required"`
}

func (q GetGraphQuery) Validate() error { return utils.ValidateStruct(q) }

// ListGraphsQuery pages through the graphs in creation order.
type ListGraphsQuery struct {
	Page     int `validate:"gte=0"`
	PageSize int `validate:"gte=0,lte=100"`
}

func (q ListGraphsQuery) Validate() error { return utils.ValidateStruct(q) }

// GetAnalysisQuery returns the analysis snapshot of a graph.
type GetAnalysisQuery struct {
	GraphID string `validate:"required"`
}

func (q GetAnalysisQuery) Validate() error { return utils.ValidateStruct(q) }

// ListArchetypesQuery lists the system archetype catalogue.
type ListArchetypesQuery struct{}

func (q ListArchetypesQuery) Validate() error { return nil }

// GetArchetypeQuery returns one archetype template.
type GetArchetypeQuery struct {
	ArchetypeID string `validate:"required"`
}

func (q GetArchetypeQuery) Validate() error { return utils.ValidateStruct(q) }
