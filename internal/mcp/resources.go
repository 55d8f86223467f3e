package mcp

import (
	"context"
	"time"

	"github.com/honeycarbs/occupation-insights/internal/backend"
	"github.com/honeycarbs/occupation-insights/internal/config"
	"github.com/honeycarbs/occupation-insights/internal/handoff"
	"github.com/honeycarbs/occupation-insights/internal/mcp/tools"
	"github.com/honeycarbs/occupation-insights/internal/proxy"
	"github.com/honeycarbs/occupation-insights/pkg/gateway"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
	sheetsclient "github.com/honeycarbs/occupation-insights/pkg/sheets"
)

// Resources holds everything the HTTP routes and tools depend on
type Resources struct {
	Analyzer       *backend.Analyzer
	Handoff        handoff.Store
	Dataset        proxy.Source
	Sheets         tools.SheetsClient // nil when Sheets credentials are not configured
	AnalyzeTimeout time.Duration
}

func provideGatewayConfig(cfg config.Config) gateway.Config {
	return gateway.Config{BaseURL: cfg.Backend.BaseURL}
}

func provideAnalyzer(client *gateway.Client) (*backend.Analyzer, error) {
	return backend.NewAnalyzer(client)
}

// provideHandoffStore uses Redis when REDIS_ADDR is set and process memory otherwise
func provideHandoffStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (handoff.Store, func(), error) {
	if cfg.Handoff.RedisAddr == "" {
		logger.Info("handoff store: in-memory", "ttl", cfg.Handoff.TTL)
		return handoff.NewMemoryStore(cfg.Handoff.TTL), func() {}, nil
	}

	store, err := handoff.NewRedisStore(ctx, handoff.RedisConfig{
		Addr:     cfg.Handoff.RedisAddr,
		Password: cfg.Handoff.RedisPassword,
		DB:       cfg.Handoff.RedisDB,
		TTL:      cfg.Handoff.TTL,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("handoff store: redis", "addr", cfg.Handoff.RedisAddr, "ttl", cfg.Handoff.TTL)
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close redis handoff store", "err", err)
		}
	}
	return store, cleanup, nil
}

func provideDatasetSource(cfg config.Config) proxy.Source {
	return proxy.NewFileSource(cfg.Results.DatasetPath)
}

// provideSheetsClient returns nil when export is not configured or the client cannot start
func provideSheetsClient(ctx context.Context, cfg config.Config, logger *logging.Logger) tools.SheetsClient {
	if cfg.Sheets.CredentialsPath == "" {
		return nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		logger.Warn("google sheets client unavailable, export_insights disabled", "err", err)
		return nil
	}

	logger.Info("google sheets client initialized")
	return newSheetsClientAdapter(client)
}

func newResources(
	cfg config.Config,
	analyzer *backend.Analyzer,
	store handoff.Store,
	dataset proxy.Source,
	sheets tools.SheetsClient,
) *Resources {
	return &Resources{
		Analyzer:       analyzer,
		Handoff:        store,
		Dataset:        dataset,
		Sheets:         sheets,
		AnalyzeTimeout: cfg.Backend.AnalyzeTimeout,
	}
}
