package pipeline

import (
	"strings"
	"testing"

	"prodgen/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Formatting(t *testing.T) {
	res := &search.Result{
		Organic: []search.OrganicEntry{
			{Title: "A", Snippet: "B", Link: "https://a.example"},
			{Title: "Saree Shop", Snippet: "Pure silk sarees", Link: "https://b.example"},
		},
		PeopleAlsoAsk: []search.Question{
			{Question: "Is it silk?", Answer: "Yes", HasAnswer: true},
			{Question: "Where is it made?"},
		},
		RelatedSearches: []search.RelatedSearch{{Query: "saree price"}, {Query: "silk saree"}},
	}

	agg := Aggregate(res, []string{"first page", "second page", "third page"})

	assert.Equal(t, "first page second page third page", agg.CombinedPageText)
	assert.Equal(t, "A: B\nSaree Shop: Pure silk sarees", agg.OrganicSummary)
	assert.Equal(t, "Q: Is it silk?\nA: Yes\nQ: Where is it made?\nA: No answer provided", agg.PeopleAskSummary)
	assert.Equal(t, "Related Search: saree price\nRelated Search: silk saree", agg.RelatedSummary)
}

func TestAggregate_SingleOrganicEntry(t *testing.T) {
	res := &search.Result{Organic: []search.OrganicEntry{{Title: "A", Snippet: "B"}}}
	assert.Equal(t, "A: B", Aggregate(res, nil).OrganicSummary)
}

func TestAggregate_EmptyAnswerIsKept(t *testing.T) {
	res := &search.Result{PeopleAlsoAsk: []search.Question{{Question: "Q1", Answer: "", HasAnswer: true}}}
	assert.Equal(t, "Q: Q1\nA: ", Aggregate(res, nil).PeopleAskSummary)
}

func TestAggregate_UnavailableSearch(t *testing.T) {
	agg := Aggregate(search.Unavailable(nil), nil)
	assert.Equal(t, AggregatedContext{}, agg)

	assert.Equal(t, AggregatedContext{CombinedPageText: "x"}, Aggregate(nil, []string{"x"}))
}

func TestProductInput_String(t *testing.T) {
	price := 4999.5
	zero := 0.0

	testCases := []struct {
		name     string
		input    ProductInput
		expected string
	}{
		{
			"NameOnly",
			ProductInput{Name: "banarasi saree"},
			"Product Name: banarasi saree, Description: N/A, Variation: N/A, Pricing: N/A",
		},
		{
			"AllFields",
			ProductInput{Name: "banarasi saree", Description: "silk", Variation: "red", Pricing: &price},
			"Product Name: banarasi saree, Description: silk, Variation: red, Pricing: 4999.5",
		},
		{
			"ZeroPrice",
			ProductInput{Name: "saree", Pricing: &zero},
			"Product Name: saree, Description: N/A, Variation: N/A, Pricing: N/A",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.input.String())
		})
	}
}

func TestPromptBuilder_Build(t *testing.T) {
	agg := AggregatedContext{
		CombinedPageText: "Handwoven in Varanasi with {{curly}} braces",
		OrganicSummary:   "A: B",
		PeopleAskSummary: "Q: Is it silk?\nA: Yes",
		RelatedSummary:   "Related Search: saree price",
	}

	prompt, err := NewPromptBuilder("India").Build("Product Name: banarasi saree", agg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "Summarize the following content to generate SEO friendly data: "))
	for _, part := range []string{
		"Product Name: banarasi saree",
		"Top Ranked data: Handwoven in Varanasi with {{curly}} braces.",
		"Organic Data: A: B",
		"People Also Ask: Q: Is it silk?\nA: Yes",
		"Related Searches: Related Search: saree price",
		"different regions of India",
		"[product regional names in India]",
		"Seo Friendly Tags:",
		"around 900 words",
		"json format",
		"JSON object only",
	} {
		assert.Contains(t, prompt, part)
	}
}

func TestRegionName(t *testing.T) {
	assert.Equal(t, "India", RegionName("in"))
	assert.Equal(t, "India", RegionName(""))
	assert.Equal(t, "the United States", RegionName("us"))
	assert.Equal(t, "the target market (br)", RegionName("br"))
}
