// cmd/ingest runs the public ticket submission service: validation, reverse
// geocoding, boundary classification, and publish to the durable ticket log.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"civic-reporting/backend/internal/config"
	"civic-reporting/backend/internal/geocode"
	healthhandler "civic-reporting/backend/internal/health/handler"
	ingesthandler "civic-reporting/backend/internal/ingest/handler"
	ingestservice "civic-reporting/backend/internal/ingest/service"
	"civic-reporting/backend/internal/messaging/producer"
	"civic-reporting/backend/internal/telemetry/otel"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "civic-ingest", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Printf("otel shutdown: %v", err)
		}
	}()
	emitter := otel.NewEventEmitter(providers.LoggerProvider)

	prod, err := producer.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.TicketsKafkaTopic, logger)
	if err != nil {
		log.Fatalf("kafka producer: %v", err)
	}
	defer prod.Close()

	resolver := geocode.NewResolver(cfg.GeocodeBaseURL, cfg.GeocodeUserAgent, cfg.GeocodeAttemptTimeout(), logger)
	svc := ingestservice.New(resolver, prod, cfg.CityName, cfg.CityAliasList(), logger, emitter)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Get("/healthz", healthhandler.New(nil, nil).Healthz)
	ingesthandler.New(svc).Routes(r)

	srv := &http.Server{
		Addr:    cfg.IngestAddr,
		Handler: r,
	}

	go func() {
		logger.Printf("ingest service listening on %s", cfg.IngestAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("shutting down ingest service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	logger.Println("ingest service stopped")
}
