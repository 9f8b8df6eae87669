package main

import (
	"fmt"

	"prodgen/config"
	"prodgen/crawler"
	"prodgen/llm"
	"prodgen/pipeline"
	"prodgen/search"
	"prodgen/storage"

	"go.uber.org/zap"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = lvl
	return zapCfg.Build()
}

func newSearchEngine(cfg *config.Config, logger *zap.Logger) search.Engine {
	if cfg.SearchProvider == config.SearchProviderSerpApi {
		return search.NewSerpApiSearchEngine(cfg.SearchAPIKey, cfg.SearchRegion, logger)
	}
	return search.NewSerperSearchEngine(cfg.SearchAPIKey, cfg.SearchRegion, logger)
}

func newFetcher(cfg *config.Config, logger *zap.Logger) (crawler.Fetcher, error) {
	extractor, err := crawler.NewTextExtractor(cfg.ExtractMode, logger)
	if err != nil {
		return nil, err
	}

	fetcherCfg := crawler.DefaultConfig()
	fetcherCfg.RequestTimeout = cfg.FetchTimeout
	fetcherCfg.ProxyURL = cfg.ProxyURL

	if cfg.FetchMode == config.FetchModeBrowser {
		return crawler.NewBrowserFetcher(fetcherCfg, extractor, logger), nil
	}
	return crawler.NewHTTPFetcher(fetcherCfg, extractor, logger)
}

// newGenerator assembles the pipeline. The returned cleanup closes the
// prompt store and is safe to call more than once.
func newGenerator(cfg *config.Config, logger *zap.Logger) (*pipeline.Generator, func(), error) {
	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	model, err := llm.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create language model client: %w", err)
	}

	prompts, err := storage.NewPromptStore(cfg.DebugPromptPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open prompt store: %w", err)
	}

	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		if err := prompts.Close(); err != nil {
			logger.Warn("failed to close prompt store", zap.Error(err))
		}
	}

	generator := pipeline.NewGenerator(
		newSearchEngine(cfg, logger),
		fetcher,
		model,
		prompts,
		pipeline.Config{
			MaxAttempts:   cfg.MaxAttempts,
			TopN:          cfg.TopN,
			SearchTimeout: cfg.SearchTimeout,
			FetchTimeout:  cfg.FetchTimeout,
			ModelTimeout:  cfg.ModelTimeout,
			RegionName:    pipeline.RegionName(cfg.SearchRegion),
		},
		logger,
	)
	return generator, cleanup, nil
}
