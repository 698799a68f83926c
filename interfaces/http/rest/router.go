// Package rest exposes the causal map over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"causalmap/infrastructure/di"
	"causalmap/interfaces/http/rest/handlers"
	"causalmap/interfaces/http/rest/middleware"
	pkgerrors "causalmap/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	logger := container.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		container: container,
		errors:    pkgerrors.NewErrorHandler(logger, container.Config.IsDevelopment()),
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	cfg := rt.container.Config
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Trace(rt.container.Tracer))
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.container.Metrics))
	router.Use(rt.errors.Middleware)

	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Location"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if cfg.EnableMetrics && rt.container.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.container.Metrics.Handler())
	}

	deps := handlers.Deps{
		CommandBus:   rt.container.CommandBus,
		QueryBus:     rt.container.QueryBus,
		Errors:       rt.errors,
		Logger:       rt.logger,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
	graphHandler := handlers.NewGraphHandler(deps)
	nodeHandler := handlers.NewNodeHandler(deps)
	edgeHandler := handlers.NewEdgeHandler(deps)
	factorHandler := handlers.NewFactorHandler(deps)
	analysisHandler := handlers.NewAnalysisHandler(deps)
	archetypeHandler := handlers.NewArchetypeHandler(deps)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(middleware.AuthOptions{
			Validator:    rt.container.JWTValidator,
			TrustGateway: cfg.IsLambda,
			Errors:       rt.errors,
			Logger:       rt.logger,
		}))
		r.Use(middleware.RateLimit(rt.container.RateLimiter, rt.errors, rt.logger))

		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", graphHandler.CreateGraph)
			r.Get("/", graphHandler.ListGraphs)

			r.Route("/{graphID}", func(r chi.Router) {
				r.Get("/", graphHandler.GetGraph)
				r.Delete("/", graphHandler.DeleteGraph)
				r.Post("/clear", graphHandler.ClearGraph)
				r.Post("/archetypes/{archetypeID}", graphHandler.ApplyArchetype)

				r.Post("/nodes", nodeHandler.CreateNode)
				r.Patch("/nodes/{nodeID}", nodeHandler.UpdateNode)
				r.Delete("/nodes/{nodeID}", nodeHandler.DeleteNode)

				r.Post("/edges", edgeHandler.CreateEdge)
				r.Patch("/edges/{edgeID}", edgeHandler.UpdateEdge)
				r.Delete("/edges/{edgeID}", edgeHandler.DeleteEdge)

				r.Post("/factors", factorHandler.CreateFactor)
				r.Patch("/factors/{factorID}", factorHandler.UpdateFactor)
				r.Delete("/factors/{factorID}", factorHandler.DeleteFactor)
				r.Post("/factors/{factorID}/node", nodeHandler.CreateNodeFromFactor)

				r.Get("/analysis", analysisHandler.GetAnalysis)
				r.Get("/loops", analysisHandler.GetLoops)
				r.Get("/leverage-points", analysisHandler.GetLeveragePoints)
				r.Get("/options", analysisHandler.GetOptions)
			})
		})

		r.Route("/archetypes", func(r chi.Router) {
			r.Get("/", archetypeHandler.ListArchetypes)
			r.Get("/{archetypeID}", archetypeHandler.GetArchetype)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once the buses are wired.
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	if rt.container.CommandBus == nil || rt.container.QueryBus == nil {
		rt.errors.HandleStatus(w, r, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
