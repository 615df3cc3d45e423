package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"microloans/internal/config"
	"microloans/internal/logging"
)

/* ───────── App ───────── */

type App struct {
	cfg config.Config
	db  DB

	logOut     io.Writer
	logs       *logging.Pipeline
	logger     *slog.Logger
	logMetrics *logging.Metrics
	registry   *prometheus.Registry
}

// newApp builds the application around cfg and configures its logging to
// write to out. The database is attached separately.
func newApp(cfg config.Config, out io.Writer) *App {
	reg := prometheus.NewRegistry()
	app := &App{
		cfg:        cfg,
		logOut:     out,
		registry:   reg,
		logMetrics: logging.NewMetrics(reg),
	}
	setupLogging(app)
	return app
}

/* ───────── main ───────── */

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := newApp(cfg, os.Stdout)
	if err := app.run(); err != nil {
		app.logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run opens the database pool and serves HTTP until SIGINT or SIGTERM.
func (a *App) run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := openPool(ctx, a.cfg.DatabaseURL, a.logs.Logger(pgxLoggerName))
	if err != nil {
		return err
	}
	defer pool.Close()
	a.db = pool

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown", "error", err)
		}
	}()

	a.logger.Info("listening", "port", a.cfg.Port, "env", a.cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}
