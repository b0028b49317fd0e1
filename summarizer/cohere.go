package summarizer

import (
	"context"
	"errors"
	"net/http"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/JerryLinyx/NewsSummarizer/config"
)

// CohereLLM uses the Cohere chat endpoint.
type CohereLLM struct {
	client      *cohereclient.Client
	model       string
	temperature float64
}

var _ Completer = (*CohereLLM)(nil)

func NewCohereLLM(cfg config.LLMConfig) (*CohereLLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("cohere api key is required")
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &CohereLLM{
		client: cohereclient.NewClient(
			cohereclient.WithToken(cfg.APIKey),
			cohereclient.WithHTTPClient(httpClient),
		),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

func (c *CohereLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	preamble := prompt.System
	temperature := c.temperature
	req := &cohere.ChatRequest{
		Message:     prompt.User,
		Preamble:    &preamble,
		Temperature: &temperature,
	}
	if c.model != "" {
		model := c.model
		req.Model = &model
	}

	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", errors.New("empty chat response")
	}
	return resp.Text, nil
}
