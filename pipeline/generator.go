package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prodgen/crawler"
	"prodgen/listing"
	"prodgen/llm"
	"prodgen/search"
	"prodgen/storage"

	"go.uber.org/zap"
)

type Config struct {
	// MaxAttempts bounds the full search, fetch and generate cycles.
	MaxAttempts int
	// TopN is the number of organic results whose pages are fetched.
	TopN int

	SearchTimeout time.Duration
	FetchTimeout  time.Duration
	ModelTimeout  time.Duration

	RegionName string
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:   2,
		TopN:          3,
		SearchTimeout: 15 * time.Second,
		FetchTimeout:  20 * time.Second,
		ModelTimeout:  120 * time.Second,
		RegionName:    "India",
	}
}

// Generator runs the search, aggregate and generate pipeline. It holds no
// per-request state, so one Generator serves concurrent requests.
type Generator struct {
	engine  search.Engine
	fetcher crawler.Fetcher
	model   llm.Completer
	prompts storage.PromptStore
	builder *PromptBuilder
	config  Config
	logger  *zap.Logger
}

func NewGenerator(
	engine search.Engine,
	fetcher crawler.Fetcher,
	model llm.Completer,
	prompts storage.PromptStore,
	config Config,
	logger *zap.Logger,
) *Generator {
	if prompts == nil {
		prompts = storage.NopPromptStore{}
	}
	defaults := DefaultConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.TopN <= 0 {
		config.TopN = defaults.TopN
	}
	if config.SearchTimeout <= 0 {
		config.SearchTimeout = defaults.SearchTimeout
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = defaults.FetchTimeout
	}
	if config.ModelTimeout <= 0 {
		config.ModelTimeout = defaults.ModelTimeout
	}
	if config.RegionName == "" {
		config.RegionName = defaults.RegionName
	}

	return &Generator{
		engine:  engine,
		fetcher: fetcher,
		model:   model,
		prompts: prompts,
		builder: NewPromptBuilder(config.RegionName),
		config:  config,
		logger:  logger,
	}
}

// Generate returns the raw model output for input. Each attempt searches
// again from scratch; when every attempt fails the result is a
// listing.GenerationError wrapping the last failure.
func (g *Generator) Generate(ctx context.Context, input string) (string, error) {
	if RequestID(ctx) == "" {
		ctx = WithRequestID(ctx, "")
	}
	logger := GetContextLogger(ctx, g.logger)

	var (
		lastErr  error
		attempts int
	)
	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		attempts = attempt

		out, err := g.attempt(ctx, logger.With(zap.Int("attempt", attempt)), input)
		if err == nil {
			return out, nil
		}

		lastErr = err
		logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.config.MaxAttempts),
			zap.Error(err))
	}

	if lastErr == nil {
		lastErr = errors.New("no attempt was made")
	}
	return "", listing.GenerationError{Attempts: attempts, Last: lastErr}
}

// Process generates a listing for product and parses it.
func (g *Generator) Process(ctx context.Context, product ProductInput) (listing.Listing, error) {
	raw, err := g.Generate(ctx, product.String())
	if err != nil {
		return nil, err
	}
	return listing.Normalize(raw)
}

func (g *Generator) attempt(ctx context.Context, logger *zap.Logger, input string) (string, error) {
	start := time.Now()
	res := g.search(ctx, input)
	logger.Info("search completed",
		zap.String("status", res.Status.String()),
		zap.Int("organic_count", len(res.Organic)),
		zap.Duration("took", time.Since(start)))

	// page text lives only as long as this attempt
	start = time.Now()
	links := res.Links(g.config.TopN)
	pages := make([]string, 0, len(links))
	for _, link := range links {
		page := g.fetch(ctx, link)
		if page.Status != crawler.PageOK {
			continue
		}
		pages = append(pages, page.Text)
	}
	logger.Info("pages fetched",
		zap.Int("requested", len(links)),
		zap.Int("fetched", len(pages)),
		zap.Duration("took", time.Since(start)))

	agg := Aggregate(res, pages)

	prompt, err := g.builder.Build(input, agg)
	if err != nil {
		return "", err
	}

	g.savePrompt(ctx, logger, prompt)

	start = time.Now()
	out, err := g.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("model invocation failed: %w", err)
	}
	logger.Info("model completed",
		zap.Int("prompt_length", len(prompt)),
		zap.Int("output_length", len(out)),
		zap.Duration("took", time.Since(start)))

	return out, nil
}

func (g *Generator) search(ctx context.Context, input string) *search.Result {
	ctx, cancel := context.WithTimeout(ctx, g.config.SearchTimeout)
	defer cancel()

	res := g.engine.Search(ctx, input)
	if res == nil {
		return search.Unavailable(errors.New("search engine returned no result"))
	}
	return res
}

func (g *Generator) fetch(ctx context.Context, link string) crawler.Page {
	ctx, cancel := context.WithTimeout(ctx, g.config.FetchTimeout)
	defer cancel()

	return g.fetcher.Fetch(ctx, link)
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.ModelTimeout)
	defer cancel()

	return g.model.Complete(ctx, prompt)
}

func (g *Generator) savePrompt(ctx context.Context, logger *zap.Logger, prompt string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("prompt store panicked", zap.Any("panic", r))
		}
	}()

	if err := g.prompts.SavePrompt(ctx, RequestID(ctx), prompt); err != nil {
		logger.Warn("failed to save debug prompt", zap.Error(err))
	}
}
