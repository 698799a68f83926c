package handlers

import (
	"context"

	"go.uber.org/zap"

	"causalmap/application/commands"
	"causalmap/application/ports"
	"causalmap/domain/config"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

// FactorHandler handles the factor register commands.
type FactorHandler struct {
	graphMutator
	cfg *config.DomainConfig
}

// NewFactorHandler creates a new factor handler
func NewFactorHandler(
	graphs ports.GraphRepository,
	snapshots ports.AnalysisStore,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *FactorHandler {
	return &FactorHandler{
		graphMutator: newGraphMutator(graphs, snapshots, publisher, logger),
		cfg:          cfg,
	}
}

// AddFactor registers a factor.
func (h *FactorHandler) AddFactor(ctx context.Context, cmd commands.AddFactorCommand) error {
	id, err := valueobjects.FactorIDFrom(cmd.FactorID)
	if err != nil {
		return err
	}
	spec, err := factorSpec(cmd)
	if err != nil {
		return err
	}
	factor, err := entities.NewFactor(id, spec, h.cfg)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.AddFactor(factor)
	})
}

func factorSpec(cmd commands.AddFactorCommand) (entities.FactorSpec, error) {
	spec := entities.FactorSpec{Text: cmd.Text, Stakeholder: cmd.Stakeholder}
	var err error
	if spec.Category, err = valueobjects.ParseCategory(cmd.Category); err != nil {
		return spec, err
	}
	if spec.VariableType, err = valueobjects.ParseVariableType(cmd.VariableType); err != nil {
		return spec, err
	}
	if spec.TimeHorizon, err = valueobjects.ParseTimeHorizon(cmd.TimeHorizon); err != nil {
		return spec, err
	}
	if spec.PoliticalDimension, err = valueobjects.ParsePoliticalDimension(cmd.PoliticalDimension); err != nil {
		return spec, err
	}
	return spec, nil
}

// UpdateFactor applies a partial update to a factor.
func (h *FactorHandler) UpdateFactor(ctx context.Context, cmd commands.UpdateFactorCommand) error {
	id, err := valueobjects.FactorIDFrom(cmd.FactorID)
	if err != nil {
		return err
	}
	patch, err := factorPatch(cmd)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.UpdateFactor(id, patch)
	})
}

func factorPatch(cmd commands.UpdateFactorCommand) (entities.FactorPatch, error) {
	patch := entities.FactorPatch{Text: cmd.Text, Stakeholder: cmd.Stakeholder}
	if cmd.Category != nil {
		v, err := valueobjects.ParseCategory(*cmd.Category)
		if err != nil {
			return patch, err
		}
		patch.Category = &v
	}
	if cmd.VariableType != nil {
		v, err := valueobjects.ParseVariableType(*cmd.VariableType)
		if err != nil {
			return patch, err
		}
		patch.VariableType = &v
	}
	if cmd.TimeHorizon != nil {
		v, err := valueobjects.ParseTimeHorizon(*cmd.TimeHorizon)
		if err != nil {
			return patch, err
		}
		patch.TimeHorizon = &v
	}
	if cmd.PoliticalDimension != nil {
		v, err := valueobjects.ParsePoliticalDimension(*cmd.PoliticalDimension)
		if err != nil {
			return patch, err
		}
		patch.PoliticalDimension = &v
	}
	return patch, nil
}

// RemoveFactor removes a factor along with the nodes created from it.
func (h *FactorHandler) RemoveFactor(ctx context.Context, cmd commands.RemoveFactorCommand) error {
	id, err := valueobjects.FactorIDFrom(cmd.FactorID)
	if err != nil {
		return err
	}
	return h.mutate(ctx, cmd.GraphID, func(g *aggregates.Graph) error {
		return g.RemoveFactor(id)
	})
}
