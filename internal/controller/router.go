package controller

import (
	"time"

	"github.com/cassiomorais/recurly-gateway/internal/infrastructure/config"
	"github.com/cassiomorais/recurly-gateway/internal/infrastructure/observability"
	redisinfra "github.com/cassiomorais/recurly-gateway/internal/infrastructure/redis"
	customMW "github.com/cassiomorais/recurly-gateway/internal/middleware"
	"github.com/cassiomorais/recurly-gateway/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RouterDeps struct {
	RedisClient      *redis.Client
	ChargeService    *service.ChargeService
	IdempotencyStore *redisinfra.IdempotencyStore
	Metrics          *observability.Metrics
	CORSConfig       config.CORSConfig
	AuthSecret       string
	RateLimit        int
	Logger           zerolog.Logger
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-Idempotency-Replayed"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.RedisClient)
	chargeH := NewChargeController(deps.ChargeService)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(customMW.RequireAuth(deps.AuthSecret))
		if deps.RateLimit > 0 {
			r.Use(customMW.RateLimit(deps.RateLimit))
		}

		chargeRoute := r.With()
		if deps.IdempotencyStore != nil {
			chargeRoute = r.With(customMW.Idempotency(deps.IdempotencyStore, deps.Metrics, deps.Logger))
		}
		chargeRoute.Post("/charges", chargeH.CreateCharge)
	})

	return r
}
