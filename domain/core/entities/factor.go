package entities

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"causalmap/domain/config"
	"causalmap/domain/core/valueobjects"
	pkgerrors "causalmap/pkg/errors"
)

// Factor is a SWOT item entered by the analyst. Nodes can be created from it.
type Factor struct {
	id                 valueobjects.FactorID
	category           valueobjects.Category
	text               string
	variableType       valueobjects.VariableType
	timeHorizon        valueobjects.TimeHorizon
	politicalDimension valueobjects.PoliticalDimension
	stakeholder        string
	createdAt          time.Time
	updatedAt          time.Time
}

// FactorSpec holds the analyst-supplied fields of a factor.
type FactorSpec struct {
	Category           valueobjects.Category
	Text               string
	VariableType       valueobjects.VariableType
	TimeHorizon        valueobjects.TimeHorizon
	PoliticalDimension valueobjects.PoliticalDimension
	Stakeholder        string
}

// FactorPatch carries the fields of a partial factor update.
type FactorPatch struct {
	Category           *valueobjects.Category
	Text               *string
	VariableType       *valueobjects.VariableType
	TimeHorizon        *valueobjects.TimeHorizon
	PoliticalDimension *valueobjects.PoliticalDimension
	Stakeholder        *string
}

// NewFactor validates the spec and creates a factor.
func NewFactor(id valueobjects.FactorID, spec FactorSpec, cfg *config.DomainConfig) (*Factor, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("factor ID cannot be empty")
	}
	if err := spec.validate(cfg); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Factor{
		id:                 id,
		category:           spec.Category,
		text:               strings.TrimSpace(spec.Text),
		variableType:       spec.VariableType,
		timeHorizon:        spec.TimeHorizon,
		politicalDimension: spec.PoliticalDimension,
		stakeholder:        strings.TrimSpace(spec.Stakeholder),
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func (s FactorSpec) validate(cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return pkgerrors.NewValidationError("factor text cannot be empty")
	}
	if utf8.RuneCountInString(text) > cfg.MaxFactorTextLength {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("factor text exceeds maximum length of %d characters", cfg.MaxFactorTextLength))
	}
	if _, err := valueobjects.ParseCategory(string(s.Category)); err != nil {
		return err
	}
	if _, err := valueobjects.ParseVariableType(string(s.VariableType)); err != nil {
		return err
	}
	if _, err := valueobjects.ParseTimeHorizon(string(s.TimeHorizon)); err != nil {
		return err
	}
	if _, err := valueobjects.ParsePoliticalDimension(string(s.PoliticalDimension)); err != nil {
		return err
	}
	return nil
}

func (f *Factor) ID() valueobjects.FactorID                           { return f.id }
func (f *Factor) Category() valueobjects.Category                     { return f.category }
func (f *Factor) Text() string                                        { return f.text }
func (f *Factor) VariableType() valueobjects.VariableType             { return f.variableType }
func (f *Factor) TimeHorizon() valueobjects.TimeHorizon               { return f.timeHorizon }
func (f *Factor) PoliticalDimension() valueobjects.PoliticalDimension { return f.politicalDimension }
func (f *Factor) Stakeholder() string                                 { return f.stakeholder }
func (f *Factor) CreatedAt() time.Time                                { return f.createdAt }
func (f *Factor) UpdatedAt() time.Time                                { return f.updatedAt }

// Spec returns the analyst-supplied fields.
func (f *Factor) Spec() FactorSpec {
	return FactorSpec{
		Category:           f.category,
		Text:               f.text,
		VariableType:       f.variableType,
		TimeHorizon:        f.timeHorizon,
		PoliticalDimension: f.politicalDimension,
		Stakeholder:        f.stakeholder,
	}
}

// Apply validates the merged result before changing the factor. Nodes already
// created from the factor keep their own label and kind.
func (f *Factor) Apply(patch FactorPatch, cfg *config.DomainConfig) error {
	spec := f.Spec()
	if patch.Category != nil {
		spec.Category = *patch.Category
	}
	if patch.Text != nil {
		spec.Text = *patch.Text
	}
	if patch.VariableType != nil {
		spec.VariableType = *patch.VariableType
	}
	if patch.TimeHorizon != nil {
		spec.TimeHorizon = *patch.TimeHorizon
	}
	if patch.PoliticalDimension != nil {
		spec.PoliticalDimension = *patch.PoliticalDimension
	}
	if patch.Stakeholder != nil {
		spec.Stakeholder = *patch.Stakeholder
	}
	if err := spec.validate(cfg); err != nil {
		return err
	}

	f.category = spec.Category
	f.text = strings.TrimSpace(spec.Text)
	f.variableType = spec.VariableType
	f.timeHorizon = spec.TimeHorizon
	f.politicalDimension = spec.PoliticalDimension
	f.stakeholder = strings.TrimSpace(spec.Stakeholder)
	f.updatedAt = time.Now()
	return nil
}

// Clone returns an independent copy of the factor.
func (f *Factor) Clone() *Factor {
	c := *f
	return &c
}
