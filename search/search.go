package search

import "context"

type Status int

const (
	StatusOK Status = iota
	// StatusUnavailable marks a result produced after the provider could not
	// be reached or answered with something unusable. Its entries are empty.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type OrganicEntry struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	// HasAnswer is false when the provider returned the question alone.
	HasAnswer bool `json:"-"`
}

type RelatedSearch struct {
	Query string `json:"query"`
}

// Result is the outcome of one search call. It is never nil: a failed call
// yields an empty Result with Status set to StatusUnavailable and Err holding
// the cause for logging.
type Result struct {
	Organic         []OrganicEntry
	PeopleAlsoAsk   []Question
	RelatedSearches []RelatedSearch

	Status Status
	Err    error
}

func Unavailable(err error) *Result {
	return &Result{Status: StatusUnavailable, Err: err}
}

// Links returns the links of the first n organic entries in rank order,
// skipping entries without a link.
func (r *Result) Links(n int) []string {
	n = max(0, min(n, len(r.Organic)))
	links := make([]string, 0, n)
	for _, entry := range r.Organic {
		if len(links) >= n {
			break
		}
		if entry.Link == "" {
			continue
		}
		links = append(links, entry.Link)
	}
	return links
}

// Engine issues a query to a search provider. Implementations never return
// an error: provider failures degrade to an unavailable Result.
type Engine interface {
	Search(ctx context.Context, query string) *Result
}
