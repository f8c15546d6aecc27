package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikemarket/backend/internal/audit"
	auditrepo "bikemarket/backend/internal/audit/repository"
	authhandler "bikemarket/backend/internal/auth/handler"
	authservice "bikemarket/backend/internal/auth/service"
	"bikemarket/backend/internal/config"
	"bikemarket/backend/internal/db"
	"bikemarket/backend/internal/event"
	listinghandler "bikemarket/backend/internal/listing/handler"
	listingrepo "bikemarket/backend/internal/listing/repository"
	"bikemarket/backend/internal/logging"
	"bikemarket/backend/internal/security"
	"bikemarket/backend/internal/server"
	"bikemarket/backend/internal/server/middleware"
	"bikemarket/backend/internal/telemetry/otel"
	userhandler "bikemarket/backend/internal/user/handler"
	userrepo "bikemarket/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Env)

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db")
	}
	defer conn.Close()
	logger.Info().Msg("connected to Postgres")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "bikemarket-api", cfg.OTLPInsecure)
	if err != nil {
		logger.Fatal().Err(err).Msg("telemetry")
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL())

	auditor := audit.NewLogger(auditrepo.NewPostgresRepository(conn), func(ctx context.Context) string {
		if ip, ok := middleware.GetClientIP(ctx); ok && ip != "" {
			return ip
		}
		return "unknown"
	})

	var emitter event.Emitter
	kafkaEmitter := event.NewKafkaEmitter(cfg.EventsKafkaBrokersList(), cfg.EventsKafkaTopic)
	if kafkaEmitter != nil {
		emitter = kafkaEmitter
		logger.Info().Str("topic", cfg.EventsKafkaTopic).Msg("listing events enabled")
	}

	users := userrepo.NewPostgresRepository(conn)
	listings := listingrepo.NewPostgresRepository(conn)
	auth := authservice.NewAuthService(users, hasher, tokens, auditor)

	router := server.NewRouter(server.Options{
		Env:            cfg.Env,
		Logger:         logger,
		Tokens:         tokens,
		AllowedOrigins: cfg.CORSAllowedOriginsList(),
		TracerProvider: providers.TracerProvider,
		Meter:          providers.MeterProvider.Meter("bikemarket-api"),
		Auth:           authhandler.NewAuthHandler(auth),
		Users:          userhandler.NewUserHandler(users),
		Listings:       listinghandler.NewListingHandler(listings, emitter, auditor),
	})

	if err := server.Run(ctx, cfg.HTTPAddr, router, logger); err != nil {
		logger.Fatal().Err(err).Msg("serve")
	}

	// Drain in-flight async event emits before tearing the emitter down.
	if kafkaEmitter != nil {
		time.Sleep(event.ShutdownDrainDuration)
		_ = kafkaEmitter.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("telemetry shutdown")
	}
	logger.Info().Msg("HTTP server stopped")
}
