package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/recurly-gateway/internal/bootstrap"
	"github.com/cassiomorais/recurly-gateway/internal/controller"
	infraRedis "github.com/cassiomorais/recurly-gateway/internal/infrastructure/redis"
	"github.com/cassiomorais/recurly-gateway/internal/providers"
	"github.com/cassiomorais/recurly-gateway/internal/recurly"
	"github.com/cassiomorais/recurly-gateway/internal/service"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "recurly-gateway-api", "recurly_gateway")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Providers ---
	recurlyProvider, err := providers.NewRecurlyProvider(recurly.Config{
		Subdomain:       app.Config.Recurly.Subdomain,
		APIKey:          app.Config.Recurly.APIKey,
		PublicKey:       app.Config.Recurly.PublicKey,
		Host:            app.Config.Recurly.Host,
		DefaultCurrency: app.Config.Recurly.DefaultCurrency,
		TestMode:        app.Config.Recurly.TestMode,
	}, app.Logger)
	if err != nil {
		app.Logger.Fatal().Err(err).Msg("Failed to configure Recurly provider")
	}

	factory := providers.NewFactory(providers.BreakerSettings{
		Threshold: app.Config.Gateway.CircuitBreakerThreshold,
		Timeout:   app.Config.Gateway.CircuitBreakerTimeout,
	}, app.Metrics, recurlyProvider)

	chargeService := service.NewChargeService(factory, app.Metrics, app.Logger)
	idempotencyStore := infraRedis.NewIdempotencyStore(app.Redis, app.Config.Gateway.IdempotencyTTL)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		RedisClient:      app.Redis,
		ChargeService:    chargeService,
		IdempotencyStore: idempotencyStore,
		Metrics:          app.Metrics,
		CORSConfig:       app.Config.Server.CORS,
		AuthSecret:       app.Config.Auth.JWTSecret,
		RateLimit:        app.Config.Gateway.RateLimitPerMinute,
		Logger:           app.Logger,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
