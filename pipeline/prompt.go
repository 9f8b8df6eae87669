package pipeline

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

const taskTemplate = `Here is some initial data from the search results:
Organic Data: {{.organic}}
People Also Ask: {{.people_ask}}
Related Searches: {{.related}}

Use this data to create a proper product name, product description, about product in points, and a product tagline.
Follow this process to complete your task:
Step 1: Summarize all the generated content obtained from the website.
Step 2: Provide the output in this format, with no extra data or explanation.

Product Regional Names: [product regional names in {{.region}}]
Product Name: [product name]
Product Description: [product description]
Product Variation: [product variation]
About Product: [about product in 10 points]
Product Tagline: [product tagline]
Product Prompt: [generate a prompt for converting input photos to professional photos based on the product use parameters for ecommerce.]
Market PainPoints : [market painpoints]
Customer Acquisition: [customer acquisition in points]
Market Entry Strategy: [market entry strategy in points]
Seo Friendly Tags: [seo friendly tags]
The generated data should be more or less around 900 words.
Do not break the above format and provide the output in json format.
Respond with the JSON object only, without any commentary before or after it.

You can stop once the data has been generated`

const contextTemplate = `Understand the context of the data provided below.
The data is extracted from the top search results.
You need to understand why they are ranked to the top search result and generate SEO friendly data to complete the task mentioned.
Also keep in mind that we need to have all the Names the product is called in different regions of {{.region}}.
You can provide the data with respect to its usuage and why this product is best suited for the user.
{{.input}}

Top Ranked data: {{.page_text}}.
Task to Perform : {{.task}}`

const summaryTemplate = `Summarize the following content to generate SEO friendly data: {{.content}}`

// PromptBuilder renders the fixed instruction prompt sent to the model.
type PromptBuilder struct {
	region  string
	task    prompts.PromptTemplate
	context prompts.PromptTemplate
	summary prompts.PromptTemplate
}

// NewPromptBuilder returns a builder whose regional-name instructions refer
// to region (e.g. "India").
func NewPromptBuilder(region string) *PromptBuilder {
	return &PromptBuilder{
		region:  region,
		task:    prompts.NewPromptTemplate(taskTemplate, []string{"organic", "people_ask", "related", "region"}),
		context: prompts.NewPromptTemplate(contextTemplate, []string{"region", "input", "page_text", "task"}),
		summary: prompts.NewPromptTemplate(summaryTemplate, []string{"content"}),
	}
}

func (b *PromptBuilder) Build(input string, agg AggregatedContext) (string, error) {
	task, err := b.task.Format(map[string]any{
		"organic":    agg.OrganicSummary,
		"people_ask": agg.PeopleAskSummary,
		"related":    agg.RelatedSummary,
		"region":     b.region,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render task prompt: %w", err)
	}

	complete, err := b.context.Format(map[string]any{
		"region":    b.region,
		"input":     input,
		"page_text": agg.CombinedPageText,
		"task":      task,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render context prompt: %w", err)
	}

	out, err := b.summary.Format(map[string]any{"content": complete})
	if err != nil {
		return "", fmt.Errorf("failed to render summary prompt: %w", err)
	}
	return out, nil
}

// RegionName maps a search region code to the name used in the prompt.
func RegionName(code string) string {
	switch code {
	case "in", "":
		return "India"
	case "us":
		return "the United States"
	case "gb", "uk":
		return "the United Kingdom"
	case "ca":
		return "Canada"
	case "au":
		return "Australia"
	default:
		return "the target market (" + code + ")"
	}
}
