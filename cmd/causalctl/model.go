package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"causalmap/domain/config"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

// model is the YAML form of a causal loop diagram.
type model struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Factors     []factorModel `yaml:"factors"`
	Nodes       []nodeModel   `yaml:"nodes"`
	Edges       []edgeModel   `yaml:"edges"`
}

type factorModel struct {
	ID                 string `yaml:"id"`
	Category           string `yaml:"category"`
	Text               string `yaml:"text"`
	VariableType       string `yaml:"variable_type"`
	TimeHorizon        string `yaml:"time_horizon"`
	PoliticalDimension string `yaml:"political_dimension"`
	Stakeholder        string `yaml:"stakeholder"`
}

// nodeModel either describes a node directly or names the factor it is made from.
type nodeModel struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
	Kind     string `yaml:"kind"`
	Factor   string `yaml:"factor"`
}

type edgeModel struct {
	ID          string `yaml:"id"`
	Source      string `yaml:"source"`
	Target      string `yaml:"target"`
	Polarity    string `yaml:"polarity"`
	Delay       bool   `yaml:"delay"`
	Description string `yaml:"description"`
}

func loadModel(r io.Reader) (*model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("model is empty")
		}
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return &m, nil
}

// build replays the model onto a fresh graph: factors first, then nodes, then edges.
func (m *model) build(cfg *config.DomainConfig) (*aggregates.Graph, error) {
	g, err := aggregates.NewGraph(m.Name, m.Description, cfg)
	if err != nil {
		return nil, err
	}

	for i, f := range m.Factors {
		factor, err := f.entity(cfg)
		if err != nil {
			return nil, fmt.Errorf("factor %d: %w", i+1, err)
		}
		if err := g.AddFactor(factor); err != nil {
			return nil, fmt.Errorf("factor %d: %w", i+1, err)
		}
	}

	for i, n := range m.Nodes {
		if err := n.addTo(g, cfg); err != nil {
			return nil, fmt.Errorf("node %d: %w", i+1, err)
		}
	}

	for i, e := range m.Edges {
		edge, err := e.entity()
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i+1, err)
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i+1, err)
		}
	}
	return g, nil
}

func (f factorModel) entity(cfg *config.DomainConfig) (*entities.Factor, error) {
	id, err := factorID(f.ID)
	if err != nil {
		return nil, err
	}
	category, err := valueobjects.ParseCategory(f.Category)
	if err != nil {
		return nil, err
	}
	variableType, err := valueobjects.ParseVariableType(f.VariableType)
	if err != nil {
		return nil, err
	}
	horizon, err := valueobjects.ParseTimeHorizon(f.TimeHorizon)
	if err != nil {
		return nil, err
	}
	dimension, err := valueobjects.ParsePoliticalDimension(f.PoliticalDimension)
	if err != nil {
		return nil, err
	}
	return entities.NewFactor(id, entities.FactorSpec{
		Category:           category,
		Text:               f.Text,
		VariableType:       variableType,
		TimeHorizon:        horizon,
		PoliticalDimension: dimension,
		Stakeholder:        f.Stakeholder,
	}, cfg)
}

func (n nodeModel) addTo(g *aggregates.Graph, cfg *config.DomainConfig) error {
	id, err := nodeID(n.ID)
	if err != nil {
		return err
	}

	if n.Factor != "" {
		fid, err := valueobjects.FactorIDFrom(n.Factor)
		if err != nil {
			return err
		}
		_, err = g.AddNodeFromFactor(fid, id)
		return err
	}

	label, err := valueobjects.NewLabelWithConfig(n.Label, cfg)
	if err != nil {
		return err
	}
	category, err := valueobjects.ParseCategory(n.Category)
	if err != nil {
		return err
	}
	kind, err := valueobjects.ParseNodeKind(n.Kind)
	if err != nil {
		return err
	}
	node, err := entities.NewNode(id, label, category, kind)
	if err != nil {
		return err
	}
	return g.AddNode(node)
}

func (e edgeModel) entity() (*entities.Edge, error) {
	id := valueobjects.NewEdgeID()
	if e.ID != "" {
		var err error
		if id, err = valueobjects.EdgeIDFrom(e.ID); err != nil {
			return nil, err
		}
	}
	source, err := valueobjects.NodeIDFrom(e.Source)
	if err != nil {
		return nil, err
	}
	target, err := valueobjects.NodeIDFrom(e.Target)
	if err != nil {
		return nil, err
	}
	polarity, err := valueobjects.ParsePolarity(e.Polarity)
	if err != nil {
		return nil, err
	}
	edge, err := entities.NewEdge(id, source, target, polarity, e.Delay)
	if err != nil {
		return nil, err
	}
	return edge.WithDescription(e.Description), nil
}

func nodeID(s string) (valueobjects.NodeID, error) {
	if s == "" {
		return valueobjects.NewNodeID(), nil
	}
	return valueobjects.NodeIDFrom(s)
}

func factorID(s string) (valueobjects.FactorID, error) {
	if s == "" {
		return valueobjects.NewFactorID(), nil
	}
	return valueobjects.FactorIDFrom(s)
}
