package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const SerperEndpoint = "https://google.serper.dev/search"

type SerperSearchEngine struct {
	client   *http.Client
	endpoint string
	apiKey   string
	region   string
	logger   *zap.Logger
}

type serperRequest struct {
	Q           string `json:"q"`
	GL          string `json:"gl"`
	Autocorrect bool   `json:"autocorrect"`
}

type serperResponse struct {
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
	PeopleAlsoAsk []struct {
		Question string  `json:"question"`
		Snippet  *string `json:"snippet"`
		Answer   *string `json:"answer"`
	} `json:"peopleAlsoAsk"`
	RelatedSearches []struct {
		Query string `json:"query"`
	} `json:"relatedSearches"`
}

type SerperOption func(*SerperSearchEngine)

func WithSerperEndpoint(endpoint string) SerperOption {
	return func(s *SerperSearchEngine) {
		s.endpoint = endpoint
	}
}

func WithSerperHTTPClient(client *http.Client) SerperOption {
	return func(s *SerperSearchEngine) {
		s.client = client
	}
}

func NewSerperSearchEngine(apiKey, region string, logger *zap.Logger, opts ...SerperOption) *SerperSearchEngine {
	s := &SerperSearchEngine{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: SerperEndpoint,
		apiKey:   apiKey,
		region:   region,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SerperSearchEngine) Search(ctx context.Context, query string) *Result {
	res, err := s.search(ctx, query)
	if err != nil {
		s.logger.Warn("serper search failed", zap.String("query", query), zap.Error(err))
		return Unavailable(err)
	}
	return res
}

func (s *SerperSearchEngine) search(ctx context.Context, query string) (*Result, error) {
	payload, err := json.Marshal(serperRequest{
		Q:           query,
		GL:          s.region,
		Autocorrect: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := &Result{Status: StatusOK}
	for _, item := range searchResp.Organic {
		result.Organic = append(result.Organic, OrganicEntry{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}
	for _, item := range searchResp.PeopleAlsoAsk {
		q := Question{Question: item.Question}
		switch {
		case item.Answer != nil:
			q.Answer, q.HasAnswer = *item.Answer, true
		case item.Snippet != nil:
			q.Answer, q.HasAnswer = *item.Snippet, true
		}
		result.PeopleAlsoAsk = append(result.PeopleAlsoAsk, q)
	}
	for _, item := range searchResp.RelatedSearches {
		result.RelatedSearches = append(result.RelatedSearches, RelatedSearch{Query: item.Query})
	}

	return result, nil
}
