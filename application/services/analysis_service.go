package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"causalmap/application/ports"
	"causalmap/domain/analysis"
	"causalmap/domain/core/aggregates"
	"causalmap/domain/core/valueobjects"
	"causalmap/domain/events"
	"causalmap/domain/versioning"
	"causalmap/pkg/observability"
)

// AnalysisService produces the loop, leverage and option analysis of a graph
// and keeps the latest snapshot per graph.
type AnalysisService struct {
	graphs    ports.GraphRepository
	snapshots ports.AnalysisStore
	publisher ports.EventPublisher
	tracer    *observability.Tracer
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	graphs ports.GraphRepository,
	snapshots ports.AnalysisStore,
	publisher ports.EventPublisher,
	tracer *observability.Tracer,
	metrics *observability.Collector,
	logger *zap.Logger,
) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		graphs:    graphs,
		snapshots: snapshots,
		publisher: publisher,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Analyze returns the analysis of the graph at its current version. A stored
// snapshot is returned as is when it matches the version. When only factors,
// names or other fields outside the nodes and edges changed, the stored
// snapshot is restamped instead of recomputed.
func (s *AnalysisService) Analyze(ctx context.Context, graphID valueobjects.GraphID) (*analysis.Snapshot, error) {
	graph, err := s.graphs.GetByID(ctx, graphID)
	if err != nil {
		return nil, err
	}

	stored, current, err := s.snapshots.Get(ctx, graphID)
	if err != nil {
		s.logger.Warn("Failed to load analysis snapshot", zap.String("graphID", graphID.String()), zap.Error(err))
		stored, current = nil, false
	}
	if current && !stored.Stale(graph.Version()) {
		s.metrics.ObserveCache(true)
		return stored, nil
	}

	var snap *analysis.Snapshot
	err = s.tracer.TraceFunction(ctx, "analysis.run", func(ctx context.Context) error {
		version, err := versioning.Capture(graph)
		if err != nil {
			return err
		}

		var diff *versioning.VersionDiff
		if stored != nil {
			diff, err = versioning.Compare(snapshotVersion(stored), version)
			if err != nil {
				return err
			}
			if !diff.StructureChange {
				s.metrics.ObserveCache(true)
				snap = restamp(stored, graph)
				s.logger.Debug("Analysis snapshot restamped",
					zap.String("graphID", snap.GraphID),
					zap.Int("fromVersion", diff.FromVersion),
					zap.Int("toVersion", diff.ToVersion),
					zap.Int("factorDelta", diff.FactorDelta),
				)
				return nil
			}
		}

		s.metrics.ObserveCache(false)
		snap = s.compute(ctx, graph, version.Checksum, diff)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.snapshots.Put(ctx, graphID, snap); err != nil {
		s.logger.Warn("Failed to store analysis snapshot", zap.String("graphID", graphID.String()), zap.Error(err))
	}
	return snap, nil
}

// Run computes the analysis of a graph without touching the store.
func (s *AnalysisService) Run(graph *aggregates.Graph) *analysis.Snapshot {
	checksum, err := versioning.Checksum(graph)
	if err != nil {
		checksum = ""
	}
	snap := analysis.RunWithConfig(graph.Nodes(), graph.Edges(), graph.Config())
	stamp(&snap, graph, checksum)
	return &snap
}

// compute runs the analysis. diff is nil on the first analysis of a graph.
func (s *AnalysisService) compute(ctx context.Context, graph *aggregates.Graph, checksum string, diff *versioning.VersionDiff) *analysis.Snapshot {
	start := time.Now()
	snap := analysis.RunWithConfig(graph.Nodes(), graph.Edges(), graph.Config())
	elapsed := time.Since(start)
	stamp(&snap, graph, checksum)

	loops := snap.Summary.Loops
	s.metrics.ObserveAnalysis(elapsed, loops.Reinforcing, loops.Balancing)
	s.tracer.AddAnnotation(ctx, "graphID", snap.GraphID)
	s.tracer.AddMetadata(ctx, "summary", snap.Summary)

	s.logger.Info("Analysis computed",
		zap.String("graphID", snap.GraphID),
		zap.Int("version", snap.GraphVersion),
		zap.Int("loops", loops.Total),
		zap.Int("leveragePoints", len(snap.LeveragePoints)),
		zap.Int("options", len(snap.Options)),
		zap.Duration("duration", elapsed),
	)

	if s.publisher != nil {
		event := events.NewAnalysisComputed(graph.ID(), graph.Version(),
			loops.Total, loops.Reinforcing, loops.Balancing,
			len(snap.LeveragePoints), len(snap.Options), snap.ComputedAt)
		if diff != nil {
			event = event.WithChanges(diff.FromVersion, diff.NodeDelta, diff.EdgeDelta)
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish analysis event", zap.String("graphID", snap.GraphID), zap.Error(err))
		}
	}
	return &snap
}

func stamp(snap *analysis.Snapshot, graph *aggregates.Graph, checksum string) {
	snap.GraphID = graph.ID().String()
	snap.GraphVersion = graph.Version()
	snap.Checksum = checksum
	snap.ComputedAt = time.Now().UTC()
	snap.Summary.AddFactors(graph.Factors())
}

// snapshotVersion describes the graph a stored snapshot was computed for.
func snapshotVersion(snap *analysis.Snapshot) *versioning.GraphVersion {
	return &versioning.GraphVersion{
		GraphID:     snap.GraphID,
		Version:     snap.GraphVersion,
		Checksum:    snap.Checksum,
		NodeCount:   snap.Summary.Nodes,
		EdgeCount:   snap.Summary.Edges,
		FactorCount: snap.Summary.Factors,
		CreatedAt:   snap.ComputedAt,
	}
}

// restamp carries a snapshot over to a newer graph version whose nodes and
// edges are unchanged.
func restamp(stored *analysis.Snapshot, graph *aggregates.Graph) *analysis.Snapshot {
	snap := *stored
	snap.GraphVersion = graph.Version()
	snap.Summary.AddFactors(graph.Factors())
	return &snap
}
