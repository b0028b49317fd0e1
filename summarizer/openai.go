package summarizer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/JerryLinyx/NewsSummarizer/config"
)

// OpenAILLM talks to an OpenAI compatible chat completions endpoint.
type OpenAILLM struct {
	Model       string
	Temperature float64
	Opts        []option.RequestOption
}

var _ Completer = (*OpenAILLM)(nil)

// NewOpenAILLM targets api.openai.com, or cfg.Endpoint when set.
func NewOpenAILLM(cfg config.LLMConfig) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &OpenAILLM{Model: cfg.Model, Temperature: cfg.Temperature, Opts: opts}, nil
}

// NewAzureOpenAILLM targets an Azure OpenAI resource; cfg.Model is the deployment name.
func NewAzureOpenAILLM(cfg config.LLMConfig) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("azure openai api key is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("azure openai endpoint is required")
	}
	opts := []option.RequestOption{
		azure.WithEndpoint(strings.TrimRight(cfg.Endpoint, "/"), cfg.APIVersion),
		azure.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	return &OpenAILLM{Model: cfg.Model, Temperature: cfg.Temperature, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(o.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
