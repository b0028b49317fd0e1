package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JerryLinyx/NewsSummarizer/config"
)

// Result is the structured answer extracted from the model reply.
type Result struct {
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// Generator summarizes and classifies article text.
type Generator interface {
	Generate(ctx context.Context, text string) (*Result, error)
}

// Completer sends one prompt to a language model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Client turns a Completer into a Generator: it builds the prompt, calls the
// model and validates the reply.
type Client struct {
	llm             Completer
	summaryLength   int
	defaultCategory string
	maxInputChars   int
	logger          *slog.Logger
}

var _ Generator = (*Client)(nil)

// Options tunes prompt construction and reply handling.
type Options struct {
	SummaryLength   int
	DefaultCategory string
	MaxInputChars   int
}

// NewClient wraps llm.
func NewClient(llm Completer, opts Options, logger *slog.Logger) (*Client, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		llm:             llm,
		summaryLength:   opts.SummaryLength,
		defaultCategory: opts.DefaultCategory,
		maxInputChars:   opts.MaxInputChars,
		logger:          logger,
	}, nil
}

// New builds the Generator for the configured provider.
func New(cfg config.LLMConfig, logger *slog.Logger) (*Client, error) {
	var (
		llm Completer
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		llm, err = NewOpenAILLM(cfg)
	case "azure":
		llm, err = NewAzureOpenAILLM(cfg)
	case "cohere":
		llm, err = NewCohereLLM(cfg)
	default:
		err = fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewClient(llm, Options{
		SummaryLength:   cfg.SummaryLength,
		DefaultCategory: cfg.DefaultCategory,
		MaxInputChars:   cfg.MaxInputChars,
	}, logger)
}

// Generate asks the model for a summary and a category of text.
func (c *Client) Generate(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	prompt := BuildPrompt(truncate(text, c.maxInputChars), c.summaryLength)
	raw, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}
	c.logger.Debug("raw model reply", "reply", raw)

	result, err := ParseResult(raw, c.defaultCategory)
	if err != nil {
		c.logger.Error("unusable model reply", "error", err, "reply", raw)
		return nil, err
	}
	return result, nil
}

// truncate cuts text to limit runes; limit <= 0 keeps everything.
func truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
