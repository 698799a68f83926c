// Package archetypes holds the library of system archetypes and applies their
// templates to a graph.
package archetypes

import (
	_ "embed"
	"fmt"

	"causalmap/domain/core/valueobjects"
	pkgerrors "causalmap/pkg/errors"

	"gopkg.in/yaml.v3"
)

//go:embed archetypes.yaml
var defaultCatalogue []byte

// NodeTemplate is a node an archetype adds to the graph.
type NodeTemplate struct {
	Label    string                `yaml:"label" json:"label"`
	Category valueobjects.Category `yaml:"category" json:"category"`
	Kind     valueobjects.NodeKind `yaml:"kind" json:"kind"`
}

// LinkTemplate is a causal link between consecutive template nodes.
type LinkTemplate struct {
	Polarity valueobjects.Polarity `yaml:"polarity" json:"polarity"`
	HasDelay bool                  `yaml:"has_delay" json:"has_delay"`
}

// Archetype is a recurring causal structure with a starter template.
type Archetype struct {
	ID                 string         `yaml:"id" json:"id"`
	Name               string         `yaml:"name" json:"name"`
	Description        string         `yaml:"description" json:"description"`
	DevelopmentContext string         `yaml:"development_context" json:"development_context"`
	StructuralElements []string       `yaml:"structural_elements" json:"structural_elements"`
	Nodes              []NodeTemplate `yaml:"nodes" json:"nodes"`
	Links              []LinkTemplate `yaml:"links" json:"links"`
}

func (a Archetype) validate() error {
	if a.ID == "" {
		return fmt.Errorf("archetype without id")
	}
	if a.Name == "" {
		return fmt.Errorf("archetype %s: missing name", a.ID)
	}
	for i, n := range a.Nodes {
		if _, err := valueobjects.NewLabel(n.Label); err != nil {
			return fmt.Errorf("archetype %s node %d: %w", a.ID, i, err)
		}
		if !n.Category.Valid() {
			return fmt.Errorf("archetype %s node %d: invalid category %q", a.ID, i, n.Category)
		}
		if !n.Kind.Valid() {
			return fmt.Errorf("archetype %s node %d: invalid kind %q", a.ID, i, n.Kind)
		}
	}
	for i, l := range a.Links {
		if !l.Polarity.Valid() {
			return fmt.Errorf("archetype %s link %d: invalid polarity %q", a.ID, i, l.Polarity)
		}
	}
	return nil
}

// Catalogue is an ordered, read-only set of archetypes.
type Catalogue struct {
	items []Archetype
	index map[string]int
}

// DefaultCatalogue returns the built-in archetype library.
func DefaultCatalogue() (*Catalogue, error) {
	return LoadCatalogue(defaultCatalogue)
}

// LoadCatalogue parses a YAML document with a top-level archetypes list.
func LoadCatalogue(data []byte) (*Catalogue, error) {
	var doc struct {
		Archetypes []Archetype `yaml:"archetypes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse archetype catalogue: %w", err)
	}

	c := &Catalogue{index: make(map[string]int, len(doc.Archetypes))}
	for _, a := range doc.Archetypes {
		if err := a.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[a.ID]; dup {
			return nil, fmt.Errorf("duplicate archetype id %q", a.ID)
		}
		if a.StructuralElements == nil {
			a.StructuralElements = []string{}
		}
		if a.Links == nil {
			a.Links = []LinkTemplate{}
		}
		c.index[a.ID] = len(c.items)
		c.items = append(c.items, a)
	}
	return c, nil
}

// List returns the archetypes in catalogue order.
func (c *Catalogue) List() []Archetype {
	out := make([]Archetype, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns one archetype by id
func (c *Catalogue) Get(id string) (Archetype, error) {
	i, ok := c.index[id]
	if !ok {
		return Archetype{}, pkgerrors.NewNotFoundError(fmt.Sprintf("archetype %s", id))
	}
	return c.items[i], nil
}
