// Package server assembles the gin router and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	authhandler "bikemarket/backend/internal/auth/handler"
	listinghandler "bikemarket/backend/internal/listing/handler"
	"bikemarket/backend/internal/security"
	"bikemarket/backend/internal/server/middleware"
	userhandler "bikemarket/backend/internal/user/handler"
)

// Options carries everything the router needs.
type Options struct {
	Env            string
	Logger         zerolog.Logger
	Tokens         *security.TokenProvider
	AllowedOrigins []string
	TracerProvider *sdktrace.TracerProvider
	Meter          metric.Meter

	Auth     *authhandler.AuthHandler
	Users    *userhandler.UserHandler
	Listings *listinghandler.ListingHandler
}

// NewRouter builds the gin engine: global middleware, auth/user/listing
// routes, a health probe, and the base route.
func NewRouter(opts Options) *gin.Engine {
	if opts.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.TracerProvider != nil {
		r.Use(otelgin.Middleware("bikemarket-api", otelgin.WithTracerProvider(opts.TracerProvider)))
	}
	if opts.Meter != nil {
		r.Use(middleware.Metrics(opts.Meter))
	}

	requireAuth := middleware.RequireAuth(opts.Tokens)

	opts.Auth.Register(r)
	opts.Users.Register(r, requireAuth)
	opts.Listings.Register(r, requireAuth)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "base route working"})
	})

	return r
}

// Run serves handler on addr until ctx is canceled, then shuts down
// gracefully with a 10s drain window.
func Run(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
