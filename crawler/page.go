package crawler

import (
	"context"
)

type PageStatus int

const (
	PageOK PageStatus = iota
	// PageUnavailable marks a page that could not be fetched or answered
	// with a non-2xx status. Its Text is empty.
	PageUnavailable
)

func (s PageStatus) String() string {
	switch s {
	case PageOK:
		return "ok"
	case PageUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type Page struct {
	URL        string
	Text       string
	Status     PageStatus
	StatusCode int
	Err        error
}

func unavailablePage(pageURL string, statusCode int, err error) Page {
	return Page{
		URL:        pageURL,
		Status:     PageUnavailable,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Fetcher retrieves a page and reduces it to visible text. Fetch never fails:
// transport errors and bad statuses come back as an unavailable Page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) Page
}

// FetchText returns the visible text of pageURL, or "" when the page is
// unavailable.
func FetchText(ctx context.Context, f Fetcher, pageURL string) string {
	page := f.Fetch(ctx, pageURL)
	if page.Status != PageOK {
		return ""
	}
	return page.Text
}
