package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/internal/app"
	"github.com/MrJamesThe3rd/movilidad/internal/config"
	movilidadHttp "github.com/MrJamesThe3rd/movilidad/internal/http"
	importHandler "github.com/MrJamesThe3rd/movilidad/internal/http/importcsv"
	submissionHandler "github.com/MrJamesThe3rd/movilidad/internal/http/submission"
	"github.com/MrJamesThe3rd/movilidad/internal/importer"
	"github.com/MrJamesThe3rd/movilidad/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		submissionH = submissionHandler.NewHandler(a.Ledger, log.Named("http"))
		importH     = importHandler.NewHandler(importer.NewParser(), log.Named("http"))
	)

	opts := movilidadHttp.Options{
		Log:            log.Named("http"),
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if a.Metrics != nil {
		opts.Metrics = a.Metrics.Handler()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           movilidadHttp.New(opts, submissionH, importH),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("daily_cap", cfg.Ledger.DailyCap),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
