package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"causalmap/application/commands/bus"
	commandhandlers "causalmap/application/commands/handlers"
	"causalmap/application/ports"
	querybus "causalmap/application/queries/bus"
	queryhandlers "causalmap/application/queries/handlers"
	"causalmap/application/services"
	"causalmap/domain/archetypes"
	domainconfig "causalmap/domain/config"
	"causalmap/infrastructure/config"
	"causalmap/infrastructure/messaging"
	"causalmap/infrastructure/messaging/eventbridge"
	"causalmap/infrastructure/persistence/memory"
	"causalmap/pkg/auth"
	"causalmap/pkg/observability"
)

// ServiceName names the service in traces and metrics.
const ServiceName = "causalmap"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		zcfg.Level = level
	}

	return zcfg.Build(zap.Fields(zap.String("service", ServiceName)))
}

// ProvideDomainConfig selects the domain limits for the environment
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	dcfg := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := dcfg.Validate(); err != nil {
		return nil, err
	}
	return dcfg, nil
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector(ServiceName)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(ServiceName, cfg.EnableTracing)
}

// ProvideGraphRepository creates the graph store
func ProvideGraphRepository(logger *zap.Logger) ports.GraphRepository {
	return memory.NewGraphRepository(logger)
}

// ProvideAnalysisStore creates the snapshot store
func ProvideAnalysisStore() ports.AnalysisStore {
	return memory.NewAnalysisStore()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideEventPublisher publishes to EventBridge when events are enabled and
// to the log otherwise. The AWS configuration is only loaded when needed.
func ProvideEventPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *observability.Collector) (ports.EventPublisher, error) {
	var publisher ports.EventPublisher = messaging.NewLogPublisher(logger)

	if cfg.EnableEvents {
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := awseventbridge.NewFromConfig(awsCfg)
		publisher = messaging.MultiPublisher{
			eventbridge.NewPublisher(client, cfg.EventBusName, logger),
			publisher,
		}
	}

	return messaging.NewInstrumentedPublisher(publisher, metrics), nil
}

// ProvideCatalogue loads the embedded archetype catalogue
func ProvideCatalogue() (*archetypes.Catalogue, error) {
	return archetypes.DefaultCatalogue()
}

// ProvideAnalysisService creates the analysis service
func ProvideAnalysisService(
	graphs ports.GraphRepository,
	snapshots ports.AnalysisStore,
	publisher ports.EventPublisher,
	tracer *observability.Tracer,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.AnalysisService {
	return services.NewAnalysisService(graphs, snapshots, publisher, tracer, metrics, logger)
}

// ProvideCommandBus creates the command bus with every handler registered
func ProvideCommandBus(
	graphs ports.GraphRepository,
	snapshots ports.AnalysisStore,
	publisher ports.EventPublisher,
	dcfg *domainconfig.DomainConfig,
	catalogue *archetypes.Catalogue,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger.Sugar()),
		bus.MetricsMiddleware(metrics.ObserveMutation),
	)

	h := commandhandlers.Handlers{
		Graphs:  commandhandlers.NewGraphHandler(graphs, snapshots, publisher, dcfg, catalogue, archetypes.UUIDGenerator{}, logger),
		Nodes:   commandhandlers.NewNodeHandler(graphs, snapshots, publisher, dcfg, logger),
		Edges:   commandhandlers.NewEdgeHandler(graphs, snapshots, publisher, logger),
		Factors: commandhandlers.NewFactorHandler(graphs, snapshots, publisher, dcfg, logger),
	}
	if err := h.Register(commandBus); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus with every handler registered
func ProvideQueryBus(
	graphs ports.GraphRepository,
	analyzer *services.AnalysisService,
	catalogue *archetypes.Catalogue,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	if err := queryhandlers.NewQueryHandlers(graphs, analyzer, catalogue).Register(queryBus); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}

// ProvideJWTValidator creates the token validator. It is nil when no secret
// is configured, which leaves the API open.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if !cfg.AuthEnabled() {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideRateLimiter creates the per-client limiter. It is nil when the limit
// is zero.
func ProvideRateLimiter(cfg *config.Config) *auth.SlidingWindowLimiter {
	if cfg.RateLimitPerMinute == 0 {
		return nil
	}
	return auth.NewPerMinuteLimiter(cfg.RateLimitPerMinute)
}
