package summarizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyContent is returned when there is no text to summarize.
	ErrEmptyContent = errors.New("no content to summarize")
	// ErrNoPayload means the reply holds no JSON object at all.
	ErrNoPayload = errors.New("no JSON object found in model reply")
	// ErrMissingField means a JSON object was found without summary or category.
	ErrMissingField = errors.New("model reply is missing summary or category")
)

// ParseResult extracts the first JSON object carrying both "summary" and
// "category" from raw, ignoring any text around it (prose, code fences).
// A present but blank category falls back to defaultCategory.
func ParseResult(raw string, defaultCategory string) (*Result, error) {
	foundObject := false
	var lastErr error

	for i := strings.IndexByte(raw, '{'); i >= 0; {
		var fields map[string]json.RawMessage
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		if err := dec.Decode(&fields); err == nil {
			foundObject = true
			result, err := resultFromFields(fields, defaultCategory)
			if err == nil {
				return result, nil
			}
			lastErr = err
		}

		next := strings.IndexByte(raw[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}

	if !foundObject {
		return nil, ErrNoPayload
	}
	return nil, lastErr
}

func resultFromFields(fields map[string]json.RawMessage, defaultCategory string) (*Result, error) {
	rawSummary, okSummary := fields["summary"]
	rawCategory, okCategory := fields["category"]
	if !okSummary || !okCategory {
		return nil, ErrMissingField
	}

	var summary, category string
	if err := json.Unmarshal(rawSummary, &summary); err != nil {
		return nil, fmt.Errorf("%w: summary is not a string", ErrMissingField)
	}
	if err := json.Unmarshal(rawCategory, &category); err != nil {
		return nil, fmt.Errorf("%w: category is not a string", ErrMissingField)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, fmt.Errorf("%w: summary is empty", ErrMissingField)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = strings.TrimSpace(defaultCategory)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is empty", ErrMissingField)
	}

	return &Result{Summary: summary, Category: category}, nil
}
