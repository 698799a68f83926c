package memory

import (
	"context"
	"sync"

	"causalmap/domain/analysis"
	"causalmap/domain/core/valueobjects"
)

// AnalysisStore keeps the latest snapshot per graph.
type AnalysisStore struct {
	mu      sync.RWMutex
	entries map[string]snapshotEntry
}

type snapshotEntry struct {
	snapshot *analysis.Snapshot
	current  bool
}

// NewAnalysisStore creates an empty store
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{entries: make(map[string]snapshotEntry)}
}

// Get returns the stored snapshot and whether it is current. A missing
// snapshot is not an error.
func (s *AnalysisStore) Get(_ context.Context, graphID valueobjects.GraphID) (*analysis.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[graphID.String()]
	if !ok {
		return nil, false, nil
	}
	snap := *entry.snapshot
	return &snap, entry.current, nil
}

// Put stores a snapshot as current
func (s *AnalysisStore) Put(_ context.Context, graphID valueobjects.GraphID, snapshot *analysis.Snapshot) error {
	snap := *snapshot

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[graphID.String()] = snapshotEntry{snapshot: &snap, current: true}
	return nil
}

// Invalidate marks the stored snapshot as out of date
func (s *AnalysisStore) Invalidate(_ context.Context, graphID valueobjects.GraphID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[graphID.String()]; ok {
		entry.current = false
		s.entries[graphID.String()] = entry
	}
	return nil
}

// Delete drops the stored snapshot
func (s *AnalysisStore) Delete(_ context.Context, graphID valueobjects.GraphID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, graphID.String())
	return nil
}
