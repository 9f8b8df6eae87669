package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// BrowserFetcher renders pages in headless Chrome before extracting text,
// for sites that build their content with JavaScript.
type BrowserFetcher struct {
	logger          *zap.Logger
	timeout         time.Duration
	extractor       TextExtractor
	ChromedpOptions []chromedp.ExecAllocatorOption
}

func NewBrowserFetcher(config *FetcherConfig, extractor TextExtractor, logger *zap.Logger) *BrowserFetcher {
	if config == nil {
		config = DefaultConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.UserAgent(config.UserAgent),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", ""),
	)
	if config.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(config.ProxyURL))
	}

	return &BrowserFetcher{
		logger:          logger,
		timeout:         config.RequestTimeout,
		extractor:       extractor,
		ChromedpOptions: opts,
	}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, pageURL string) Page {
	start := time.Now()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.ChromedpOptions...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, b.timeout)
	defer timeoutCancel()

	resp, err := chromedp.RunResponse(taskCtx, chromedp.Navigate(pageURL))
	if err != nil {
		b.logger.Warn("browser navigation failed",
			zap.String("url", pageURL),
			zap.Error(err))
		return unavailablePage(pageURL, 0, fmt.Errorf("navigation failed: %w", err))
	}

	statusCode := responseStatus(resp)
	if statusCode < 200 || statusCode > 299 {
		err := fmt.Errorf("server returned status %d", statusCode)
		b.logger.Warn("browser navigation failed",
			zap.String("url", pageURL),
			zap.Int("status_code", statusCode),
			zap.Error(err))
		return unavailablePage(pageURL, statusCode, err)
	}

	var domHTML string
	if err := chromedp.Run(taskCtx, chromedp.OuterHTML("html", &domHTML)); err != nil {
		b.logger.Warn("failed to read rendered DOM",
			zap.String("url", pageURL),
			zap.Error(err))
		return unavailablePage(pageURL, statusCode, err)
	}

	text, err := b.extractor.ExtractText([]byte(domHTML), pageURL)
	if err != nil {
		b.logger.Warn("text extraction failed",
			zap.String("url", pageURL),
			zap.Error(err))
	}

	b.logger.Debug("page rendered",
		zap.String("url", pageURL),
		zap.Int("status_code", statusCode),
		zap.Int("dom_length", len(domHTML)),
		zap.Duration("took", time.Since(start)))

	return Page{
		URL:        pageURL,
		Text:       text,
		Status:     PageOK,
		StatusCode: statusCode,
	}
}

// responseStatus treats a missing main-frame response (e.g. about:blank) as 200.
func responseStatus(resp *network.Response) int {
	if resp == nil {
		return 200
	}
	return int(resp.Status)
}
