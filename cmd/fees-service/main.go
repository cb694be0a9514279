package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/clinic-fees-service/internal/api"
	"github.com/Cheertaboi/clinic-fees-service/internal/api/middleware"
	"github.com/Cheertaboi/clinic-fees-service/internal/config"
	"github.com/Cheertaboi/clinic-fees-service/internal/logger"
	"github.com/Cheertaboi/clinic-fees-service/internal/pricing"
	"github.com/Cheertaboi/clinic-fees-service/internal/repository"
	"github.com/Cheertaboi/clinic-fees-service/internal/service"
	"github.com/Cheertaboi/clinic-fees-service/pkg/db"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		logger.LogFatal("config: %v", err)
	}

	// pick the price source
	var source service.PriceSource
	switch cfg.PriceSource {
	case config.SourcePostgres:
		dbCfg, err := db.LoadPostgresConfig()
		if err != nil {
			logger.LogFatal("db config: %v", err)
		}
		conn, err := db.NewPostgresConnection(dbCfg)
		if err != nil {
			logger.LogFatal("db connect: %v", err)
		}
		defer conn.Close()
		source = repository.NewPostgresSource(conn)
	default:
		source = repository.NewAPISource(cfg.APIBaseURL, &http.Client{Timeout: cfg.FetchTimeout})
	}

	policy, err := pricing.LookupPolicy(cfg.PolicyName)
	if err != nil {
		logger.LogFatal("policy: %v", err)
	}

	svc := service.NewPricingService(source, policy, cfg.FetchTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", api.NewRouter(svc))

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.LogError("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logger.LogInfo("starting fees-service on %s (source=%s, policy=%s)", cfg.ServerAddr, cfg.PriceSource, policy.Name)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.LogFatal("listen: %s", err)
	}

	<-idleConnsClosed
	logger.LogInfo("server stopped")
}
