package crawler

import (
	"bytes"
	"net/url"

	"github.com/markusmobius/go-trafilatura"
	"go.uber.org/zap"
)

// TrafilaturaExtractor keeps the main content of a page as detected by
// trafilatura, falling back to the full visible text when nothing is found.
type TrafilaturaExtractor struct {
	fallback TextExtractor
	logger   *zap.Logger
}

func NewTrafilaturaExtractor(fallback TextExtractor, logger *zap.Logger) *TrafilaturaExtractor {
	return &TrafilaturaExtractor{
		fallback: fallback,
		logger:   logger,
	}
}

func (te *TrafilaturaExtractor) ExtractText(body []byte, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		te.logger.Debug("trafilatura: failed to parse URL", zap.String("url", pageURL), zap.Error(err))
		return te.fallback.ExtractText(body, pageURL)
	}

	opts := trafilatura.Options{
		OriginalURL: parsedURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil || result == nil {
		te.logger.Debug("trafilatura: extraction failed", zap.String("url", pageURL), zap.Error(err))
		return te.fallback.ExtractText(body, pageURL)
	}

	text := CollapseWhitespace(result.ContentText)
	if text == "" {
		return te.fallback.ExtractText(body, pageURL)
	}

	te.logger.Debug("trafilatura_extraction_result",
		zap.String("url", pageURL),
		zap.String("title", result.Metadata.Title),
		zap.String("language", result.Metadata.Language),
		zap.Int("text_length", len(text)))

	return text, nil
}
