package valueobjects

import (
	"encoding/json"
	"strings"

	pkgerrors "causalmap/pkg/errors"

	"github.com/google/uuid"
)

// identifier is the shared representation of the opaque string ids used in a
// causal graph. Any non-empty string is accepted; generated ids are UUIDs.
type identifier struct {
	value string
}

func newIdentifier() identifier {
	return identifier{value: uuid.New().String()}
}

func parseIdentifier(kind, s string) (identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return identifier{}, pkgerrors.NewValidationError(kind + " ID cannot be empty")
	}
	return identifier{value: s}, nil
}

// String returns the raw id
func (i identifier) String() string {
	return i.value
}

// IsZero checks if the id is the zero value
func (i identifier) IsZero() bool {
	return i.value == ""
}

// MarshalJSON implements json.Marshaler
func (i identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (i *identifier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &i.value)
}

// NodeID identifies a node within a graph.
type NodeID struct{ identifier }

// NewNodeID creates a new random NodeID
func NewNodeID() NodeID { return NodeID{newIdentifier()} }

// NodeIDFrom creates a NodeID from an existing string
func NodeIDFrom(s string) (NodeID, error) {
	id, err := parseIdentifier("node", s)
	return NodeID{id}, err
}

// MustNodeID is NodeIDFrom for literals known to be valid.
func MustNodeID(s string) NodeID {
	id, err := NodeIDFrom(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool { return id.value == other.value }

// EdgeID identifies a causal link within a graph.
type EdgeID struct{ identifier }

func NewEdgeID() EdgeID { return EdgeID{newIdentifier()} }

func EdgeIDFrom(s string) (EdgeID, error) {
	id, err := parseIdentifier("edge", s)
	return EdgeID{id}, err
}

func MustEdgeID(s string) EdgeID {
	id, err := EdgeIDFrom(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id EdgeID) Equals(other EdgeID) bool { return id.value == other.value }

// FactorID identifies a SWOT factor within a graph.
type FactorID struct{ identifier }

func NewFactorID() FactorID { return FactorID{newIdentifier()} }

func FactorIDFrom(s string) (FactorID, error) {
	id, err := parseIdentifier("factor", s)
	return FactorID{id}, err
}

func MustFactorID(s string) FactorID {
	id, err := FactorIDFrom(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id FactorID) Equals(other FactorID) bool { return id.value == other.value }

// GraphID identifies an analysis context.
type GraphID struct{ identifier }

func NewGraphID() GraphID { return GraphID{newIdentifier()} }

func GraphIDFrom(s string) (GraphID, error) {
	id, err := parseIdentifier("graph", s)
	return GraphID{id}, err
}

func (id GraphID) Equals(other GraphID) bool { return id.value == other.value }
