package di

import (
	"go.uber.org/zap"

	"causalmap/application/commands/bus"
	"causalmap/application/ports"
	querybus "causalmap/application/queries/bus"
	"causalmap/application/services"
	"causalmap/domain/archetypes"
	domainconfig "causalmap/domain/config"
	"causalmap/infrastructure/config"
	"causalmap/pkg/auth"
	"causalmap/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	Metrics      *observability.Collector
	Tracer       *observability.Tracer
	Graphs       ports.GraphRepository
	Snapshots    ports.AnalysisStore
	Publisher    ports.EventPublisher
	Catalogue    *archetypes.Catalogue
	Analysis     *services.AnalysisService
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	JWTValidator *auth.JWTValidator
	RateLimiter  *auth.SlidingWindowLimiter
}
