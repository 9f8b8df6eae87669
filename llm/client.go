package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Completer turns a fully assembled prompt into raw model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client adapts any langchaingo model to Completer.
type Client struct {
	model       llms.Model
	temperature float64
}

func NewClient(model llms.Model) *Client {
	return &Client{
		model:       model,
		temperature: 0.7,
	}
}

// NewOpenAI builds a chat model for the OpenAI API.
func NewOpenAI(apiKey, modelName string) (*Client, error) {
	model, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai model: %w", err)
	}
	return NewClient(model), nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
