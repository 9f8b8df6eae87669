package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// HTTPFetcher downloads pages with a plain HTTP GET. A fresh collector is
// built for every call so concurrent requests never share callbacks.
type HTTPFetcher struct {
	config    *FetcherConfig
	transport http.RoundTripper
	extractor TextExtractor
	logger    *zap.Logger
}

func NewHTTPFetcher(config *FetcherConfig, extractor TextExtractor, logger *zap.Logger) (*HTTPFetcher, error) {
	if config == nil {
		config = DefaultConfig()
	}

	transport, err := NewTransport(config.ProxyURL)
	if err != nil {
		return nil, err
	}

	return &HTTPFetcher{
		config:    config,
		transport: transport,
		extractor: extractor,
		logger:    logger,
	}, nil
}

// NewTransport returns the transport shared by all page requests, routed
// through proxyURL when it is set.
func NewTransport(proxyURL string) (*http.Transport, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(u)
	}

	return transport, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) Page {
	if err := ctx.Err(); err != nil {
		return unavailablePage(pageURL, 0, err)
	}

	start := time.Now()

	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
		colly.MaxBodySize(f.config.MaxBodySize),
		colly.DetectCharset(),
		// statuses are judged below, colly must not turn them into errors
		colly.ParseHTTPErrorResponse(),
		// a cancelled request aborts its page download
		colly.StdlibContext(ctx),
	)
	c.WithTransport(f.transport)
	c.SetRequestTimeout(f.config.RequestTimeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	var (
		body       []byte
		statusCode int
	)
	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		body = r.Body
	})

	if err := c.Visit(pageURL); err != nil {
		f.logger.Warn("page fetch failed",
			zap.String("url", pageURL),
			zap.Error(err))
		return unavailablePage(pageURL, statusCode, err)
	}

	if statusCode < 200 || statusCode > 299 {
		err := fmt.Errorf("server returned status %d", statusCode)
		f.logger.Warn("page fetch failed",
			zap.String("url", pageURL),
			zap.Int("status_code", statusCode),
			zap.Error(err))
		return unavailablePage(pageURL, statusCode, err)
	}

	text, err := f.extractor.ExtractText(body, pageURL)
	if err != nil {
		// partial text is still useful context
		f.logger.Warn("text extraction failed",
			zap.String("url", pageURL),
			zap.Error(err))
	}

	f.logger.Debug("page fetched",
		zap.String("url", pageURL),
		zap.Int("status_code", statusCode),
		zap.Int("html_size", len(body)),
		zap.Int("text_size", len(text)),
		zap.Duration("took", time.Since(start)))

	return Page{
		URL:        pageURL,
		Text:       text,
		Status:     PageOK,
		StatusCode: statusCode,
	}
}
