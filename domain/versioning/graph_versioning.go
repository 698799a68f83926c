package versioning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"causalmap/domain/core/aggregates"
)

// GraphVersion records the analysable shape of a graph at one version.
type GraphVersion struct {
	GraphID     string    `json:"graph_id"`
	Version     int       `json:"version"`
	Checksum    string    `json:"checksum"`
	NodeCount   int       `json:"node_count"`
	EdgeCount   int       `json:"edge_count"`
	FactorCount int       `json:"factor_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Capture records the current version of a graph.
func Capture(graph *aggregates.Graph) (*GraphVersion, error) {
	if graph == nil {
		return nil, fmt.Errorf("graph cannot be nil")
	}
	checksum, err := Checksum(graph)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum: %w", err)
	}
	return &GraphVersion{
		GraphID:     graph.ID().String(),
		Version:     graph.Version(),
		Checksum:    checksum,
		NodeCount:   graph.NodeCount(),
		EdgeCount:   graph.EdgeCount(),
		FactorCount: graph.FactorCount(),
		CreatedAt:   time.Now(),
	}, nil
}

type checksumNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Kind     string `json:"kind"`
}

type checksumEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Polarity string `json:"polarity"`
	Delay    bool   `json:"delay"`
}

// Checksum hashes everything the analysis reads: nodes and edges with their
// order. Factors, names and timestamps are left out, so two graphs with the
// same checksum produce the same loops, leverage points and options.
func Checksum(graph *aggregates.Graph) (string, error) {
	nodes := graph.Nodes()
	edges := graph.Edges()

	data := struct {
		Nodes []checksumNode `json:"nodes"`
		Edges []checksumEdge `json:"edges"`
	}{
		Nodes: make([]checksumNode, 0, len(nodes)),
		Edges: make([]checksumEdge, 0, len(edges)),
	}
	for _, n := range nodes {
		data.Nodes = append(data.Nodes, checksumNode{
			ID:       n.ID().String(),
			Label:    n.Label().String(),
			Category: string(n.Category()),
			Kind:     string(n.Kind()),
		})
	}
	for _, e := range edges {
		data.Edges = append(data.Edges, checksumEdge{
			ID:       e.ID().String(),
			Source:   e.SourceID().String(),
			Target:   e.TargetID().String(),
			Polarity: string(e.Polarity()),
			Delay:    e.HasDelay(),
		})
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:]), nil
}

// VersionDiff represents the difference between two versions
type VersionDiff struct {
	FromVersion     int           `json:"from_version"`
	ToVersion       int           `json:"to_version"`
	NodeDelta       int           `json:"node_delta"`
	EdgeDelta       int           `json:"edge_delta"`
	FactorDelta     int           `json:"factor_delta"`
	StructureChange bool          `json:"structure_changed"`
	TimeDiff        time.Duration `json:"time_diff"`
}

// Compare reports how v2 differs from v1.
func Compare(v1, v2 *GraphVersion) (*VersionDiff, error) {
	if v1 == nil || v2 == nil {
		return nil, fmt.Errorf("versions cannot be nil")
	}
	if v1.GraphID != v2.GraphID {
		return nil, fmt.Errorf("versions belong to different graphs")
	}
	return &VersionDiff{
		FromVersion:     v1.Version,
		ToVersion:       v2.Version,
		NodeDelta:       v2.NodeCount - v1.NodeCount,
		EdgeDelta:       v2.EdgeCount - v1.EdgeCount,
		FactorDelta:     v2.FactorCount - v1.FactorCount,
		StructureChange: v1.Checksum != v2.Checksum,
		TimeDiff:        v2.CreatedAt.Sub(v1.CreatedAt),
	}, nil
}
