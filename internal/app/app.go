package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/rostergo/internal/catalog"
	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/feed"
	"github.com/specialistvlad/rostergo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	publisher  *feed.Publisher
	httpServer *http.Server
	healthAddr string
	config     *Config
}

// NewApp is the constructor for the main application. Shell output goes to
// outW and logs to errW. When the config names a catalog, loader reads it and
// the registry is seeded before NewApp returns; when it names a feed URL, the
// feed is connected and subscribed to registry events.
func NewApp(ctx context.Context, outW, errW io.Writer, cfg *Config, loader catalog.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}

	var opts []registry.Option
	if cfg.Feed.URL != "" {
		publisher, err := feed.Connect(ctx, cfg.Feed)
		if err != nil {
			return nil, fmt.Errorf("failed to connect event feed: %w", err)
		}
		a.publisher = publisher
		opts = append(opts, registry.WithNotifier(publisher))
	}
	a.registry = registry.New(opts...)

	if cfg.CatalogPath != "" {
		if err := a.seed(ctx, loader); err != nil {
			a.Close()
			return nil, err
		}
	}

	logger.Debug("Application initialized.", "stats", a.registry.Stats())
	return a, nil
}

func (a *App) seed(ctx context.Context, loader catalog.Loader) error {
	if loader == nil {
		return fmt.Errorf("catalog path %q given but no catalog loader configured", a.config.CatalogPath)
	}

	m, err := loader.Load(ctx, a.config.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := catalog.Seed(ctx, a.registry, m); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Close releases the event feed connection, if any.
func (a *App) Close() error {
	if a.publisher == nil {
		return nil
	}
	a.logger.Debug("Closing event feed.")
	return a.publisher.Close()
}
