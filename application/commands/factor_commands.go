package commands

import (
	"causalmap/pkg/utils"
)

// AddFactorCommand registers a SWOT factor.
type AddFactorCommand struct {
	GraphID            string `json:"-" validate:"required"`
	FactorID           string `json:"id" validate:"required,max=128"`
	Category           string `json:"category" validate:"required,oneof=strength weakness opportunity threat"`
	Text               string `json:"text" validate:"required"`
	VariableType       string `json:"variable_type" validate:"required,oneof=stock flow auxiliary"`
	TimeHorizon        string `json:"time_horizon" validate:"required,oneof=short-term medium-term long-term"`
	PoliticalDimension string `json:"political_dimension" validate:"required,oneof=power institutions incentives resources"`
	Stakeholder        string `json:"stakeholder" validate:"max=200"`
}

func (c AddFactorCommand) Validate() error { return utils.ValidateStruct(c) }

// UpdateFactorCommand changes the given fields of a factor.
type UpdateFactorCommand struct {
	GraphID            string  `json:"-" validate:"required"`
	FactorID           string  `json:"-" validate:"required"`
	Category           *string `json:"category" validate:"omitempty,oneof=strength weakness opportunity threat"`
	Text               *string `json:"text" validate:"omitempty,min=1"`
	VariableType       *string `json:"variable_type" validate:"omitempty,oneof=stock flow auxiliary"`
	TimeHorizon        *string `json:"time_horizon" validate:"omitempty,oneof=short-term medium-term long-term"`
	PoliticalDimension *string `json:"political_dimension" validate:"omitempty,oneof=power institutions incentives resources"`
	Stakeholder        *string `json:"stakeholder" validate:"omitempty,max=200"`
}

func (c UpdateFactorCommand) Validate() error { return utils.ValidateStruct(c) }

// RemoveFactorCommand deletes a factor and the nodes created from it.
type RemoveFactorCommand struct {
	GraphID  string `json:"-" validate:"required"`
	FactorID string `json:"-" validate:"required"`
}

func (c RemoveFactorCommand) Validate() error { return utils.ValidateStruct(c) }
