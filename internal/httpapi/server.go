package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gatewayd/internal/auth"
	"gatewayd/internal/channel"
	"gatewayd/internal/observability"
	"gatewayd/internal/routing"
	"gatewayd/pkg/types"
)

// AdapterService is the adapter activation manager as seen by the API.
type AdapterService interface {
	Snapshot() types.AdapterSetResponse
	SetMode(exclusive bool)
	Activate(id string) error
	ToggleLoad(id string) error
	Reseed(seed []types.Adapter) error
}

// ModelRegistry stores the model services exposed by the gateway.
type ModelRegistry interface {
	List() []types.ModelService
	Get(id string) (types.ModelService, error)
	Add(in types.ModelService) (types.ModelService, error)
}

// RateLimits stores rate-limit policies.
type RateLimits interface {
	List() []types.RateLimitPolicy
	Add(in types.RateLimitPolicy) (types.RateLimitPolicy, error)
	Update(id string, in types.RateLimitPolicy) (types.RateLimitPolicy, error)
}

// Channels stores channel models and their weights.
type Channels interface {
	List() []types.ChannelModel
	Add(in channel.Input) (types.ChannelModel, error)
	Update(id string, in channel.Input) (types.ChannelModel, error)
	Weights() []types.ChannelWeightSummary
}

// UnifiedServices stores multi-model services.
type UnifiedServices interface {
	List() []types.UnifiedService
	Add(in routing.Input) (types.UnifiedService, error)
	Update(id string, in routing.Input) (types.UnifiedService, error)
}

// Dashboard builds observability dashboards.
type Dashboard interface {
	Build(f observability.Filter) (types.DashboardResponse, error)
}

// SessionGate issues and checks console sessions.
type SessionGate interface {
	Login(secret string) (auth.Session, error)
	Verify(token string) (time.Time, error)
	TTL() time.Duration
}

// Deps are the services behind the API. Gate may be nil, which leaves the
// API open; every other field is required.
type Deps struct {
	Adapters AdapterService
	// Seed returns the adapter set used by POST /api/lora/reseed. Nil
	// reseeds with the built-in default.
	Seed      func() ([]types.Adapter, error)
	Models    ModelRegistry
	Limits    RateLimits
	Channels  Channels
	Services  UnifiedServices
	Dashboard Dashboard
	Gate      SessionGate
}

type server struct {
	Deps
}

func NewMux(d Deps) http.Handler {
	s := &server{Deps: d}
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match", "X-Log-Level"},
			ExposedHeaders:   []string{"ETag"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if draining() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("draining"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", s.getSession)
		r.Post("/session", s.login)
		r.Delete("/session", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Get("/lora", s.getAdapters)
			r.Put("/lora/mode", s.setMode)
			r.Post("/lora/reseed", s.reseed)
			r.Post("/lora/adapters/{id}/activate", s.activate)
			r.Post("/lora/adapters/{id}/toggle-load", s.toggleLoad)

			r.Get("/models", s.listModels)
			r.Post("/models", s.addModel)
			r.Get("/models/{id}", s.getModel)

			r.Get("/rate-limits", s.listRateLimits)
			r.Post("/rate-limits", s.addRateLimit)
			r.Put("/rate-limits/{id}", s.updateRateLimit)

			r.Get("/channels", s.listChannels)
			r.Post("/channels", s.addChannel)
			r.Get("/channels/weights", s.channelWeights)
			r.Put("/channels/{id}", s.updateChannel)

			r.Get("/services", s.listServices)
			r.Post("/services", s.addService)
			r.Put("/services/{id}", s.updateService)

			r.Get("/observability", s.dashboard)
		})
	})

	return r
}
