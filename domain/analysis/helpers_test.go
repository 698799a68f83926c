package analysis

import (
	"testing"

	"causalmap/domain/core/entities"
	"causalmap/domain/core/valueobjects"
)

type link struct {
	id, src, dst string
	polarity     valueobjects.Polarity
	delay        bool
}

const (
	same     = valueobjects.PolaritySame
	opposite = valueobjects.PolarityOpposite
)

func buildNodes(t testing.TB, ids ...string) []*entities.Node {
	t.Helper()
	nodes := make([]*entities.Node, 0, len(ids))
	for _, id := range ids {
		label, err := valueobjects.NewLabel(id)
		if err != nil {
			t.Fatal(err)
		}
		n, err := entities.NewNode(valueobjects.MustNodeID(id), label, valueobjects.CategoryStrength, valueobjects.NodeKindStock)
		if err != nil {
			t.Fatal(err)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func buildEdges(t testing.TB, links ...link) []*entities.Edge {
	t.Helper()
	edges := make([]*entities.Edge, 0, len(links))
	for _, l := range links {
		e, err := entities.NewEdge(valueobjects.MustEdgeID(l.id), valueobjects.MustNodeID(l.src), valueobjects.MustNodeID(l.dst), l.polarity, l.delay)
		if err != nil {
			t.Fatal(err)
		}
		edges = append(edges, e)
	}
	return edges
}

func ids(nodes []valueobjects.NodeID) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}
