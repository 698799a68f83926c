package entities

import (
	"time"

	"causalmap/domain/config"
	"causalmap/domain/core/valueobjects"
	pkgerrors "causalmap/pkg/errors"
)

// Node is a variable on the causal loop diagram.
type Node struct {
	id        valueobjects.NodeID
	label     valueobjects.Label
	category  valueobjects.Category
	kind      valueobjects.NodeKind
	factorID  valueobjects.FactorID
	createdAt time.Time
	updatedAt time.Time
}

// NodePatch carries the fields of a partial node update. Nil fields are left
// untouched.
type NodePatch struct {
	Label    *string
	Category *valueobjects.Category
	Kind     *valueobjects.NodeKind
}

// NewNode creates a node after validating its enums.
func NewNode(id valueobjects.NodeID, label valueobjects.Label, category valueobjects.Category, kind valueobjects.NodeKind) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node ID cannot be empty")
	}
	if label.IsZero() {
		return nil, pkgerrors.NewValidationError("node label cannot be empty")
	}
	if _, err := valueobjects.ParseCategory(string(category)); err != nil {
		return nil, err
	}
	if _, err := valueobjects.ParseNodeKind(string(kind)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Node{
		id:        id,
		label:     label,
		category:  category,
		kind:      kind,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewNodeFromFactor places a factor on the diagram. The label is the leading
// part of the factor text and auxiliary variables become decision nodes.
func NewNodeFromFactor(id valueobjects.NodeID, factor *Factor, cfg *config.DomainConfig) (*Node, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	label, err := valueobjects.LabelFromText(factor.Text(), cfg.FactorLabelMaxLength)
	if err != nil {
		return nil, err
	}

	node, err := NewNode(id, label, factor.Category(), factor.VariableType().NodeKind())
	if err != nil {
		return nil, err
	}
	node.factorID = factor.ID()
	return node, nil
}

func (n *Node) ID() valueobjects.NodeID         { return n.id }
func (n *Node) Label() valueobjects.Label       { return n.label }
func (n *Node) Category() valueobjects.Category { return n.category }
func (n *Node) Kind() valueobjects.NodeKind     { return n.kind }
func (n *Node) CreatedAt() time.Time            { return n.createdAt }
func (n *Node) UpdatedAt() time.Time            { return n.updatedAt }

// FactorID returns the originating factor and whether there is one.
func (n *Node) FactorID() (valueobjects.FactorID, bool) {
	return n.factorID, !n.factorID.IsZero()
}

// Apply validates every field of the patch before changing any of them.
func (n *Node) Apply(patch NodePatch, cfg *config.DomainConfig) error {
	label := n.label
	if patch.Label != nil {
		l, err := valueobjects.NewLabelWithConfig(*patch.Label, cfg)
		if err != nil {
			return err
		}
		label = l
	}
	category := n.category
	if patch.Category != nil {
		c, err := valueobjects.ParseCategory(string(*patch.Category))
		if err != nil {
			return err
		}
		category = c
	}
	kind := n.kind
	if patch.Kind != nil {
		k, err := valueobjects.ParseNodeKind(string(*patch.Kind))
		if err != nil {
			return err
		}
		kind = k
	}

	n.label, n.category, n.kind = label, category, kind
	n.updatedAt = time.Now()
	return nil
}

// Clone returns an independent copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}
