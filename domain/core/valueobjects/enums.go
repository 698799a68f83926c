package valueobjects

import (
	"fmt"

	pkgerrors "causalmap/pkg/errors"
)

// Category is the SWOT tag a node or factor originates from.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryWeakness    Category = "weakness"
	CategoryOpportunity Category = "opportunity"
	CategoryThreat      Category = "threat"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryStrength, CategoryWeakness, CategoryOpportunity, CategoryThreat}

func (c Category) Valid() bool {
	switch c {
	case CategoryStrength, CategoryWeakness, CategoryOpportunity, CategoryThreat:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	return parseEnum("category", Category(s))
}

// NodeKind is the structural role of a node in system-dynamics terms.
type NodeKind string

const (
	NodeKindStock    NodeKind = "stock"
	NodeKindFlow     NodeKind = "flow"
	NodeKindDecision NodeKind = "decision"
)

func (k NodeKind) Valid() bool {
	switch k {
	case NodeKindStock, NodeKindFlow, NodeKindDecision:
		return true
	}
	return false
}

func ParseNodeKind(s string) (NodeKind, error) {
	return parseEnum("node kind", NodeKind(s))
}

// Polarity tells whether a change in the source moves the target the same or
// the opposite way.
type Polarity string

const (
	PolaritySame     Polarity = "same"
	PolarityOpposite Polarity = "opposite"
)

func (p Polarity) Valid() bool {
	switch p {
	case PolaritySame, PolarityOpposite:
		return true
	}
	return false
}

func ParsePolarity(s string) (Polarity, error) {
	return parseEnum("polarity", Polarity(s))
}

// VariableType is how a factor behaves once placed on the diagram.
type VariableType string

const (
	VariableTypeStock     VariableType = "stock"
	VariableTypeFlow      VariableType = "flow"
	VariableTypeAuxiliary VariableType = "auxiliary"
)

func (v VariableType) Valid() bool {
	switch v {
	case VariableTypeStock, VariableTypeFlow, VariableTypeAuxiliary:
		return true
	}
	return false
}

func ParseVariableType(s string) (VariableType, error) {
	return parseEnum("variable type", VariableType(s))
}

// NodeKind maps a factor variable type onto a node kind. Auxiliary variables
// become decision nodes.
func (v VariableType) NodeKind() NodeKind {
	switch v {
	case VariableTypeStock:
		return NodeKindStock
	case VariableTypeFlow:
		return NodeKindFlow
	case VariableTypeAuxiliary:
		return NodeKindDecision
	}
	return NodeKindDecision
}

type TimeHorizon string

const (
	TimeHorizonShort  TimeHorizon = "short-term"
	TimeHorizonMedium TimeHorizon = "medium-term"
	TimeHorizonLong   TimeHorizon = "long-term"
)

func (h TimeHorizon) Valid() bool {
	switch h {
	case TimeHorizonShort, TimeHorizonMedium, TimeHorizonLong:
		return true
	}
	return false
}

func ParseTimeHorizon(s string) (TimeHorizon, error) {
	return parseEnum("time horizon", TimeHorizon(s))
}

// PoliticalDimension is the political-economy lens a factor is filed under.
type PoliticalDimension string

const (
	PoliticalDimensionPower        PoliticalDimension = "power"
	PoliticalDimensionInstitutions PoliticalDimension = "institutions"
	PoliticalDimensionIncentives   PoliticalDimension = "incentives"
	PoliticalDimensionResources    PoliticalDimension = "resources"
)

func (d PoliticalDimension) Valid() bool {
	switch d {
	case PoliticalDimensionPower, PoliticalDimensionInstitutions,
		PoliticalDimensionIncentives, PoliticalDimensionResources:
		return true
	}
	return false
}

func ParsePoliticalDimension(s string) (PoliticalDimension, error) {
	return parseEnum("political dimension", PoliticalDimension(s))
}

type enum interface {
	~string
	Valid() bool
}

func parseEnum[T enum](name string, v T) (T, error) {
	if !v.Valid() {
		var zero T
		return zero, pkgerrors.NewValidationError(fmt.Sprintf("invalid %s %q", name, string(v)))
	}
	return v, nil
}
