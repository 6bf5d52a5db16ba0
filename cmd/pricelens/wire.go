package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/pricelens/backend/config"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/cache"
	"github.com/pricelens/backend/internal/infrastructure/catalog"
	"github.com/pricelens/backend/internal/infrastructure/llm"
	"github.com/pricelens/backend/internal/infrastructure/metrics"
	"github.com/pricelens/backend/internal/infrastructure/search"
	"github.com/pricelens/backend/internal/lexicon"
	"github.com/pricelens/backend/internal/observability"
	"github.com/pricelens/backend/internal/usecase"
)

// app holds the wired pipeline and everything that needs closing.
type app struct {
	agent    *usecase.AgentService
	metrics  *metrics.PrometheusMetrics
	reloader catalogReloader
	closers  []io.Closer
}

// catalogReloader is implemented by both catalog stores.
type catalogReloader interface {
	Reload(ctx context.Context) error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// loadConfig reads configuration and applies the command-line log overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      out,
		ServiceName: "pricelens",
	})
}

// buildApp wires infrastructure adapters into the agent service. Missing
// completion or search credentials are not fatal: the pipeline degrades to
// its fallbacks.
func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{
		metrics: metrics.NewPrometheusMetrics(metrics.DefaultConfig()),
	}

	store, err := openCatalog(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	if r, ok := store.(catalogReloader); ok {
		a.reloader = r
	}

	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	var completion domain.CompletionService
	if cfg.CompletionConfigured() {
		client, err := llm.NewClient(llm.Config{
			Provider: cfg.Completion.Provider,
			APIKey:   cfg.Completion.APIKey,
			BaseURL:  cfg.Completion.BaseURL,
			Model:    cfg.Completion.Model,
			Timeout:  cfg.Completion.Timeout,
		}, observability.Component(log, "llm"))
		if err != nil {
			a.Close()
			return nil, err
		}
		completion = client
		log.Info().Str("provider", cfg.Completion.Provider).Msg("completion service configured")
	} else {
		log.Warn().Msg("completion api key not set; classification and synthesis use fallbacks")
	}

	var searchService domain.SearchService
	if cfg.SearchConfigured() {
		searchService = search.NewClient(search.Config{
			APIKey:        cfg.Search.APIKey,
			EngineID:      cfg.Search.EngineID,
			BaseURL:       cfg.Search.BaseURL,
			Timeout:       cfg.Search.Timeout,
			RatePerSecond: float64(cfg.RateLimit.Search) / 60,
		}, observability.Component(log, "search"))
	} else {
		log.Warn().Msg("search credentials not set; online queries report not configured")
	}

	cacheRepo, err := openCache(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, cacheRepo)

	a.agent = usecase.NewAgentService(store, completion, searchService, cacheRepo, lex, a.metrics, usecase.AgentConfig{
		MaxQueryLength: cfg.Agent.MaxQueryLength,
		HistoryLimit:   cfg.Agent.HistoryLimit,
		RequestTimeout: cfg.Agent.RequestTimeout,
		MatchTimeout:   cfg.Agent.MatchTimeout,
		DisableIndex:   cfg.Agent.DisableIndex,
		Classifier: usecase.ClassifierConfig{
			IntroKeywords: cfg.Agent.IntroKeywords,
			IntroMessage:  cfg.Agent.IntroMessage,
			Timeout:       cfg.Agent.ClassifyTimeout,
		},
		Augmenter: usecase.AugmenterConfig{
			ResultCount: cfg.Search.ResultCount,
			CacheTTL:    cfg.Cache.TTL,
			Timeout:     cfg.Agent.SearchTimeout,
		},
		Synthesizer: usecase.SynthesizerConfig{
			Timeout: cfg.Agent.SynthesisTimeout,
		},
	}, log)

	return a, nil
}

func openCatalog(ctx context.Context, cfg *config.Config, log zerolog.Logger) (domain.CatalogStore, error) {
	storeLog := observability.Component(log, "catalog")
	switch cfg.Catalog.Type {
	case "sqlite":
		store, err := catalog.NewSQLiteStore(ctx, cfg.Catalog.Path, storeLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite catalog: %w", err)
		}
		return store, nil
	default:
		store, err := catalog.NewJSONFileStore(cfg.Catalog.Path, storeLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open json catalog: %w", err)
		}
		return store, nil
	}
}

type closableCache interface {
	domain.CacheRepository
	io.Closer
}

func openCache(ctx context.Context, cfg *config.Config) (closableCache, error) {
	if cfg.Cache.Type == "redis" {
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// stderrLogger is used by one-shot commands whose stdout carries the reply.
func stderrLogger(cfg *config.Config) zerolog.Logger {
	return newLogger(cfg, os.Stderr)
}
