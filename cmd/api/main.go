package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/matchsage/booking-api/internal/config"
	dbpkg "github.com/matchsage/booking-api/internal/db"
	"github.com/matchsage/booking-api/internal/queue"
	"github.com/matchsage/booking-api/internal/routes"
	"github.com/matchsage/booking-api/internal/telemetry"
	"github.com/matchsage/booking-api/internal/timezone"
)

func main() {

	cfg := config.Load()

	if !timezone.IsValid(cfg.DefaultTimezone) {
		log.Printf("invalid DEFAULT_TIMEZONE %q, keeping %s", cfg.DefaultTimezone, timezone.Default())
	}
	timezone.SetDefault(cfg.DefaultTimezone)

	shutdownTracing := telemetry.Setup(cfg.OTelServiceName)

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	closeRoutes := routes.RegisterRoutes(r, db, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RabbitMQURL != "" {
		go queue.StartConsumer(ctx, cfg.RabbitMQURL, queue.LogHandler)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.OTelServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	closeRoutes()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
}
