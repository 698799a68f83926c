package queries

import (
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/entities"
	"causalmap/pkg/utils"
)

// GraphSummaryView is the list representation of a graph.
type GraphSummaryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
	Version     int    `json:"version"`
	NodeCount   int    `json:"node_count"`
	EdgeCount   int    `json:"edge_count"`
	FactorCount int    `json:"factor_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// GraphView is a graph with all of its elements.
type GraphView struct {
	GraphSummaryView
	Nodes   []NodeView   `json:"nodes"`
	Edges   []EdgeView   `json:"edges"`
	Factors []FactorView `json:"factors"`
}

// NodeView is the wire representation of a node.
type NodeView struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Category  string `json:"category"`
	Kind      string `json:"kind"`
	FactorID  string `json:"factor_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// EdgeView is the wire representation of an edge.
type EdgeView struct {
	ID          string `json:"id"`
	SourceID    string `json:"source_id"`
	TargetID    string `json:"target_id"`
	Polarity    string `json:"polarity"`
	HasDelay    bool   `json:"has_delay"`
	Description string `json:"description,omitempty"`
}

// FactorView is the wire representation of a factor.
type FactorView struct {
	ID                 string `json:"id"`
	Category           string `json:"category"`
	Text               string `json:"text"`
	VariableType       string `json:"variable_type"`
	TimeHorizon        string `json:"time_horizon"`
	PoliticalDimension string `json:"political_dimension"`
	Stakeholder        string `json:"stakeholder,omitempty"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// NewGraphSummaryView builds the list view of g.
func NewGraphSummaryView(g *aggregates.Graph) GraphSummaryView {
	return GraphSummaryView{
		ID:          g.ID().String(),
		Name:        g.Name(),
		Description: g.Description(),
		OwnerID:     g.OwnerID(),
		Version:     g.Version(),
		NodeCount:   g.NodeCount(),
		EdgeCount:   g.EdgeCount(),
		FactorCount: g.FactorCount(),
		CreatedAt:   utils.FormatTime(g.CreatedAt()),
		UpdatedAt:   utils.FormatTime(g.UpdatedAt()),
	}
}

// NewGraphView builds the full view of g.
func NewGraphView(g *aggregates.Graph) *GraphView {
	v := &GraphView{
		GraphSummaryView: NewGraphSummaryView(g),
		Nodes:            make([]NodeView, 0, g.NodeCount()),
		Edges:            make([]EdgeView, 0, g.EdgeCount()),
		Factors:          make([]FactorView, 0, g.FactorCount()),
	}
	for _, n := range g.Nodes() {
		v.Nodes = append(v.Nodes, NewNodeView(n))
	}
	for _, e := range g.Edges() {
		v.Edges = append(v.Edges, NewEdgeView(e))
	}
	for _, f := range g.Factors() {
		v.Factors = append(v.Factors, NewFactorView(f))
	}
	return v
}

// NewNodeView builds the view of n.
func NewNodeView(n *entities.Node) NodeView {
	v := NodeView{
		ID:        n.ID().String(),
		Label:     n.Label().String(),
		Category:  string(n.Category()),
		Kind:      string(n.Kind()),
		CreatedAt: utils.FormatTime(n.CreatedAt()),
		UpdatedAt: utils.FormatTime(n.UpdatedAt()),
	}
	if fid, ok := n.FactorID(); ok {
		v.FactorID = fid.String()
	}
	return v
}

// NewEdgeView builds the view of e.
func NewEdgeView(e *entities.Edge) EdgeView {
	return EdgeView{
		ID:          e.ID().String(),
		SourceID:    e.SourceID().String(),
		TargetID:    e.TargetID().String(),
		Polarity:    string(e.Polarity()),
		HasDelay:    e.HasDelay(),
		Description: e.Description(),
	}
}

// NewFactorView builds the view of f.
func NewFactorView(f *entities.Factor) FactorView {
	return FactorView{
		ID:                 f.ID().String(),
		Category:           string(f.Category()),
		Text:               f.Text(),
		VariableType:       string(f.VariableType()),
		TimeHorizon:        string(f.TimeHorizon()),
		PoliticalDimension: string(f.PoliticalDimension()),
		Stakeholder:        f.Stakeholder(),
		CreatedAt:          utils.FormatTime(f.CreatedAt()),
		UpdatedAt:          utils.FormatTime(f.UpdatedAt()),
	}
}
