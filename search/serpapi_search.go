package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const SerpApiEndpoint = "https://serpapi.com/search"

type SerpApiSearchEngine struct {
	client   *http.Client
	endpoint string
	apiKey   string
	region   string
	logger   *zap.Logger
}

type serpApiResponse struct {
	OrganicResults []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
	} `json:"organic_results"`
	RelatedQuestions []struct {
		Question string  `json:"question"`
		Snippet  *string `json:"snippet"`
	} `json:"related_questions"`
	RelatedSearches []struct {
		Query string `json:"query"`
	} `json:"related_searches"`
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	Error string `json:"error"`
}

type SerpApiOption func(*SerpApiSearchEngine)

func WithSerpApiEndpoint(endpoint string) SerpApiOption {
	return func(s *SerpApiSearchEngine) {
		s.endpoint = endpoint
	}
}

func WithSerpApiHTTPClient(client *http.Client) SerpApiOption {
	return func(s *SerpApiSearchEngine) {
		s.client = client
	}
}

func NewSerpApiSearchEngine(apiKey, region string, logger *zap.Logger, opts ...SerpApiOption) *SerpApiSearchEngine {
	s := &SerpApiSearchEngine{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: SerpApiEndpoint,
		apiKey:   apiKey,
		region:   region,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SerpApiSearchEngine) Search(ctx context.Context, query string) *Result {
	res, err := s.search(ctx, query)
	if err != nil {
		s.logger.Warn("serpapi search failed", zap.String("query", query), zap.Error(err))
		return Unavailable(err)
	}
	return res
}

func (s *SerpApiSearchEngine) search(ctx context.Context, query string) (*Result, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("gl", s.region)
	params.Set("nfpr", "1") // no autocorrected results
	params.Set("api_key", s.apiKey)

	apiURL := s.endpoint + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var searchResp serpApiResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if searchResp.Error != "" {
		return nil, fmt.Errorf("API returned error: %s", searchResp.Error)
	}

	result := &Result{Status: StatusOK}
	for _, item := range searchResp.OrganicResults {
		result.Organic = append(result.Organic, OrganicEntry{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}
	for _, item := range searchResp.RelatedQuestions {
		q := Question{Question: item.Question}
		if item.Snippet != nil {
			q.Answer, q.HasAnswer = *item.Snippet, true
		}
		result.PeopleAlsoAsk = append(result.PeopleAlsoAsk, q)
	}
	for _, item := range searchResp.RelatedSearches {
		result.RelatedSearches = append(result.RelatedSearches, RelatedSearch{Query: item.Query})
	}

	return result, nil
}
