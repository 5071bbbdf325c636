package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fr0stylo/gamecatalog"
	"github.com/fr0stylo/gamecatalog/internal/adapters/gormstore"
	"github.com/fr0stylo/gamecatalog/internal/app/ports"
	"github.com/fr0stylo/gamecatalog/internal/app/services"
	"github.com/fr0stylo/gamecatalog/internal/config"
	"github.com/fr0stylo/gamecatalog/internal/db"
	"github.com/fr0stylo/gamecatalog/internal/feeds"
	"github.com/fr0stylo/gamecatalog/internal/observability"
	"github.com/fr0stylo/gamecatalog/internal/server"
	"github.com/fr0stylo/gamecatalog/internal/server/routes"
)

const shutdownTimeout = 10 * time.Second

// appEnv bundles everything a command needs once configuration is loaded.
type appEnv struct {
	cfg      config.Config
	log      *slog.Logger
	database *db.Database
	catalog  *services.GameCatalogService
	populate *services.PopulateService
	store    *gormstore.Store
	closers  []func(context.Context) error
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("gamecatalog exited", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	populate := &cobra.Command{
		Use:   "populate",
		Short: "Fetch the store feeds once and print the summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPopulate(cmd.Context(), cmd)
		},
	}

	root := &cobra.Command{
		Use:           "gamecatalog",
		Short:         "Mobile game catalog service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, populate)
	return root
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.cfg.Database.LogTiming {
		go rt.database.LogLatencyStats(ctx, rt.log, time.Minute)
	}

	srv := server.New(rt.log, gamecatalog.PublicFS, server.Options{
		ServiceName: rt.cfg.Observability.ServiceName,
		Tracing:     rt.cfg.Observability.Enabled,
	})
	srv.RegisterRouter(routes.NewHealthRoutes(rt.store))
	srv.RegisterRouter(routes.NewGameRoutes(rt.catalog, rt.populate, rt.log))

	addr := fmt.Sprintf(":%d", rt.cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		rt.log.Info("Starting server", "port", rt.cfg.Server.Port)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	rt.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func runPopulate(parent context.Context, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	summary, err := rt.populate.Populate(ctx)
	if err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func bootstrap(ctx context.Context) (*appEnv, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, closeLog := observability.NewLogger(observability.LogConfig{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  50,
		MaxBackups: 3,
	})
	slog.SetDefault(log)

	rt := &appEnv{cfg: cfg, log: log}
	rt.closers = append(rt.closers, func(context.Context) error { return closeLog() })

	shutdownTelemetry, err := observability.SetupOpenTelemetry(ctx, log, observability.OpenTelemetryConfig{
		Enabled:           cfg.Observability.Enabled,
		OTLPEndpoint:      cfg.Observability.OTLPEndpoint,
		OTLPTraceHeaders:  cfg.Observability.OTLPTraceHeaders,
		OTLPMetricHeaders: cfg.Observability.OTLPMetricHeaders,
		ServiceName:       cfg.Observability.ServiceName,
		ServiceVer:        cfg.Observability.ServiceVer,
		Environment:       cfg.Environment,
		SamplingRatio:     cfg.Observability.SamplingRatio,
		MetricsConsole:    cfg.Observability.MetricsConsole,
	})
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	rt.closers = append(rt.closers, shutdownTelemetry)

	database, err := db.Open(db.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	rt.database = database
	rt.closers = append(rt.closers, func(context.Context) error { return database.Close() })

	rt.store = gormstore.NewStore(database)
	fetcher := feeds.New(feeds.Config{
		Attempts: cfg.Feeds.Attempts,
		Timeout:  cfg.FeedTimeout(),
		Backoff:  cfg.FeedBackoff(),
	}, log)

	rt.catalog = services.NewGameCatalogService(rt.store)
	rt.populate, err = services.NewPopulateService(rt.store, fetcher, services.PopulateConfig{
		Sources: []ports.FeedSource{
			{Platform: "ios", URL: cfg.Feeds.IOSURL},
			{Platform: "android", URL: cfg.Feeds.AndroidURL},
		},
		TopN: cfg.Populate.TopN,
	}, log)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to build populate pipeline: %w", err)
	}

	return rt, nil
}

// close releases resources in reverse acquisition order.
func (r *appEnv) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			slog.Error("Failed to release resource", "error", err)
		}
	}
}
