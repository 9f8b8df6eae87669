package crawler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DOMExtractor keeps every visible text node of the document. Scripts,
// styles and comments are dropped, elements without text are removed and
// whitespace is collapsed into single spaces.
type DOMExtractor struct {
	// RemoveSelector lists elements whose content is never visible.
	RemoveSelector string
}

func NewDOMExtractor() *DOMExtractor {
	return &DOMExtractor{
		RemoveSelector: "script, style, noscript, template",
	}
}

func (e *DOMExtractor) ExtractText(body []byte, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse html from %s: %w", pageURL, err)
	}

	doc.Find(e.RemoveSelector).Remove()

	for _, n := range doc.Nodes {
		removeComments(n)
	}

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" {
			s.Remove()
		}
	})

	var parts []string
	for _, n := range doc.Nodes {
		parts = collectText(n, parts)
	}

	return CollapseWhitespace(strings.Join(parts, " ")), nil
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

func collectText(n *html.Node, parts []string) []string {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			parts = append(parts, text)
		}
		return parts
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = collectText(c, parts)
	}
	return parts
}

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
