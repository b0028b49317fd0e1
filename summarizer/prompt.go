package summarizer

import (
	"fmt"
	"strings"
)

// Prompt is the message pair sent to the model.
type Prompt struct {
	System string
	User   string
}

const systemPrompt = "You are a news editor. You answer with a single JSON object and nothing else."

// BuildPrompt asks for a JSON object with a summary of about summaryLength
// words and one category label.
func BuildPrompt(content string, summaryLength int) Prompt {
	var sb strings.Builder
	sb.WriteString("Analyze the following article and provide ONLY a JSON response with a summary and a category ")
	sb.WriteString("(e.g., Technology, Sports, Business, Entertainment, Health, or General).\n")
	if summaryLength > 0 {
		sb.WriteString(fmt.Sprintf("Keep the summary under %d words.\n", summaryLength))
	}
	sb.WriteString("The response must be valid JSON with no additional text before or after.\n\n")
	sb.WriteString("Article:\n")
	sb.WriteString(content)
	sb.WriteString("\n\nResponse format:\n")
	sb.WriteString("{\n  \"summary\": \"Brief summary of the news article\",\n  \"category\": \"Relevant category\"\n}\n")

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
	}
}
