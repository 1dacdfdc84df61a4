// cmd/form-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recruitment-form/internal/common/config"
	apphttp "recruitment-form/internal/common/http"
	"recruitment-form/internal/common/logger"
	"recruitment-form/internal/common/observability"
	"recruitment-form/internal/form"
	"recruitment-form/internal/server"
	"recruitment-form/internal/submission"
)

// janitorInterval is how often idle sessions are swept.
const janitorInterval = time.Minute

func main() {
	cfg, err := config.Resolve()
	if err != nil {
		bootLog := logger.New("info", "console", "stderr")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting form server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	schema := form.ApplicationSchema()
	subCfg := submission.LoadConfig(cfg.Submission)
	client := apphttp.NewClient(subCfg.Timeout)

	factory, err := server.NewSessionFactory(cfg, schema, client, obs, log)
	if err != nil {
		zapLog.Fatal("session factory setup failed", zap.Error(err))
	}
	store := server.NewSessionStore(config.GetDuration(cfg.Server.SessionTTL), cfg.Server.MaxSessions, factory, log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go store.Run(ctx, janitorInterval)

	srv := server.New(cfg, schema, store, log)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			zapLog.Fatal("form server failed", zap.Error(err))
		}
	}()

	zapLog.Info("Form server started",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("endpoint", subCfg.EndpointURL),
		zap.Strings("excludedFields", subCfg.ExcludedFields),
	)

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down form server", zap.Error(err))
	}
	stop()

	zapLog.Info("Form server stopped gracefully")
}
