package crawler

import (
	"bytes"
	"net/url"

	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

// ReadabilityExtractor keeps only the main article of a page. Pages where
// readability finds nothing fall back to the full visible text.
type ReadabilityExtractor struct {
	fallback TextExtractor
	logger   *zap.Logger
}

func NewReadabilityExtractor(fallback TextExtractor, logger *zap.Logger) *ReadabilityExtractor {
	return &ReadabilityExtractor{
		fallback: fallback,
		logger:   logger,
	}
}

func (re *ReadabilityExtractor) ExtractText(body []byte, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		re.logger.Debug("readability: failed to parse URL", zap.String("url", pageURL), zap.Error(err))
		return re.fallback.ExtractText(body, pageURL)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		re.logger.Debug("readability: extraction failed", zap.String("url", pageURL), zap.Error(err))
		return re.fallback.ExtractText(body, pageURL)
	}

	text := CollapseWhitespace(article.TextContent)
	if text == "" {
		return re.fallback.ExtractText(body, pageURL)
	}

	re.logger.Debug("readability_extraction_result",
		zap.String("url", pageURL),
		zap.String("title", article.Title),
		zap.Int("text_length", len(text)))

	return text, nil
}
