package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"carddash.org/internal/app"
	"carddash.org/internal/appconf"
	"carddash.org/internal/dataset"
	"carddash.org/internal/restapi"
	"carddash.org/internal/webui"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand(cmd, *configFile)
		},
	}
}

func serveCommand(cmd *cobra.Command, configFile string) error {
	cfg, err := loadConfig(cmd, configFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, cfg, logger)
}

// newApplication loads the dataset named by cfg. The caller owns the returned
// manager and must shut it down.
func newApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	dataConfig := dataset.Config{
		DataURL: cfg.DataURL,
		Env:     cfg.Env,
		Verbose: cfg.Verbose,
	}

	manager, err := dataset.InitManager(ctx, dataConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	return &app.Application{
		Config:      cfg,
		DataConfig:  dataConfig,
		Logger:      logger,
		DataManager: manager,
	}, nil
}

func newServer(application *app.Application) *http.Server {
	api := restapi.NewRestAPI(application)
	webUI := webui.NewWebUI(application)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(webUI.SetWebUIRoutes),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(application.Logger.Handler(), slog.LevelError),
	}
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, cfg appconf.Config, logger *slog.Logger) error {
	application, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.DataManager.Shutdown()

	application.DataManager.PrintStatistics()

	srv := newServer(application)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
