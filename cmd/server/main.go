// cmd/server runs the internal staff API (login and role-scoped ticket reads)
// and the stream consumer that drains the ticket log into Postgres. Database
// migrations are applied at startup.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	authhandler "civic-reporting/backend/internal/auth/handler"
	authservice "civic-reporting/backend/internal/auth/service"
	"civic-reporting/backend/internal/authz"
	"civic-reporting/backend/internal/config"
	"civic-reporting/backend/internal/db"
	"civic-reporting/backend/internal/db/migrate"
	healthhandler "civic-reporting/backend/internal/health/handler"
	"civic-reporting/backend/internal/messaging/consumer"
	"civic-reporting/backend/internal/security"
	"civic-reporting/backend/internal/server"
	"civic-reporting/backend/internal/stream"
	"civic-reporting/backend/internal/telemetry/otel"
	tickethandler "civic-reporting/backend/internal/ticket/handler"
	"civic-reporting/backend/internal/ticket/repository"
	ticketservice "civic-reporting/backend/internal/ticket/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrate.Run(cfg.DatabaseURL, "up"); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	logger.Println("migrations applied")

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "civic-server", cfg.OTLPInsecure)
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

	evaluator, err := authz.NewEvaluator(ctx)
	if err != nil {
		log.Fatalf("authz: %v", err)
	}

	repo := repository.NewPostgresRepository(database)
	authSvc := authservice.NewService(security.NewTokenProvider(cfg.JWTSecret, cfg.JWTLifetime()))
	querySvc := ticketservice.NewQueryService(repo, evaluator)

	cons, err := consumer.NewKafkaConsumer(cfg.KafkaBrokersList(), cfg.TicketsKafkaTopic, cfg.KafkaGroupID, logger)
	if err != nil {
		log.Fatalf("kafka consumer: %v", err)
	}
	defer cons.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stream.New(cons, repo, logger, emitter).Run(ctx)
	}()

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Get("/healthz", healthhandler.New(database, evaluator).Healthz)
	authhandler.New(authSvc).Routes(r)
	r.Group(func(r chi.Router) {
		r.Use(server.Auth(authSvc))
		tickethandler.New(querySvc).Routes(r)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		logger.Printf("internal API listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("shutting down internal API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	wg.Wait()
	logger.Println("internal API stopped")
}
