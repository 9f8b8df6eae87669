package crawler

import (
	"fmt"

	"go.uber.org/zap"
)

// TextExtractor reduces an HTML document to plain visible text. On malformed
// input it returns whatever text it could recover along with the error.
type TextExtractor interface {
	ExtractText(body []byte, pageURL string) (string, error)
}

const (
	ExtractorDOM         = "dom"
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
)

func NewTextExtractor(kind string, logger *zap.Logger) (TextExtractor, error) {
	dom := NewDOMExtractor()

	switch kind {
	case ExtractorDOM, "":
		return dom, nil
	case ExtractorReadability:
		return NewReadabilityExtractor(dom, logger), nil
	case ExtractorTrafilatura:
		return NewTrafilaturaExtractor(dom, logger), nil
	default:
		return nil, fmt.Errorf("unsupported text extractor %q", kind)
	}
}
