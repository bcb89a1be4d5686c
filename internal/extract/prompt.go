// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// extractionPromptTmpl is the prompt sent to the completion model for each
// document. It asks for two labeled bulleted sections, or the sentinel
// phrase when the text carries no usable experience-based signal. The
// parser in parse.go depends on this exact response shape.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`The following is a {{.Kind}} review post about "{{.Subject}}".

[Post content]
{{.Content}}

Extract the pros and cons of {{.Subject}} from the text above.
Only include specific points grounded in actual experience.

Respond in exactly this format:

PROS:
- (specific pro 1)
- (specific pro 2)
- (specific pro 3)

CONS:
- (specific con 1)
- (specific con 2)
- (specific con 3)

If the text does not contain enough pros and cons, respond with "insufficient information".`))

// promptData fills extractionPromptTmpl.
type promptData struct {
	Kind    string
	Subject string
	Content string
}

// systemPromptFor returns the system role message for a domain.
func systemPromptFor(domain types.Domain) string {
	if domain == types.DomainCareer {
		return "You are a career insight analyst. You extract only pros and cons grounded in real working experience."
	}
	return "You are a product review analyst. You extract only pros and cons grounded in actual usage experience."
}

// renderPrompt builds the user prompt for one document.
func renderPrompt(subject string, domain types.Domain, content string) (string, error) {
	kind := "product"
	if domain == types.DomainCareer {
		kind = "career experience"
	}

	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, promptData{
		Kind:    kind,
		Subject: subject,
		Content: content,
	}); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}

const (
	defaultModel = openai.GPT3Dot5Turbo

	// completionTemperature is low because this is an extraction task,
	// not a creative one.
	completionTemperature = 0.3

	completionMaxTokens = 500
)

// OpenAIBackend calls the OpenAI chat completion API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend builds a backend for the given API key and model.
// An empty model selects the default.
func NewOpenAIBackend(cfg types.ExtractionConfig) *OpenAIBackend {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIBackend{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}
}

// Complete sends one chat completion request and returns the reply text.
func (b *OpenAIBackend) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
