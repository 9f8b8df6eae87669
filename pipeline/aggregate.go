package pipeline

import (
	"strings"

	"prodgen/search"
)

const noAnswer = "No answer provided"

// AggregatedContext is the search material of one attempt, flattened into
// the text blocks the prompt embeds.
type AggregatedContext struct {
	CombinedPageText string
	OrganicSummary   string
	PeopleAskSummary string
	RelatedSummary   string
}

// Aggregate merges the fetched page texts (in fetch order) with the search
// metadata of the same attempt.
func Aggregate(res *search.Result, pages []string) AggregatedContext {
	agg := AggregatedContext{
		CombinedPageText: strings.Join(pages, " "),
	}
	if res == nil {
		return agg
	}

	organic := make([]string, 0, len(res.Organic))
	for _, entry := range res.Organic {
		organic = append(organic, entry.Title+": "+entry.Snippet)
	}
	agg.OrganicSummary = strings.Join(organic, "\n")

	questions := make([]string, 0, len(res.PeopleAlsoAsk))
	for _, q := range res.PeopleAlsoAsk {
		answer := noAnswer
		if q.HasAnswer {
			answer = q.Answer
		}
		questions = append(questions, "Q: "+q.Question+"\nA: "+answer)
	}
	agg.PeopleAskSummary = strings.Join(questions, "\n")

	related := make([]string, 0, len(res.RelatedSearches))
	for _, r := range res.RelatedSearches {
		related = append(related, "Related Search: "+r.Query)
	}
	agg.RelatedSummary = strings.Join(related, "\n")

	return agg
}
