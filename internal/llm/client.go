package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client is the narrow text-generation capability the pipeline consumes.
// Generate returns free text. GenerateStructured asks for strict JSON
// matching schemaHint and decodes it into out; when the reply cannot be
// parsed, out is reset to its zero value and no error is returned, so
// callers can rely on a well-formed (if empty) result.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStructured(ctx context.Context, prompt, schemaHint string, out any) error
}

type anthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient builds a Client backed by the Anthropic Messages API.
func NewAnthropicClient(apiKey, baseURL, model string, maxTokens int) Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &anthropicClient{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *anthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic generate: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

func (c *anthropicClient) GenerateStructured(ctx context.Context, prompt, schemaHint string, out any) error {
	full := fmt.Sprintf(`%s

Respond with valid JSON matching this schema:
%s

IMPORTANT: Return ONLY valid JSON, no other text.`, prompt, schemaHint)

	text, err := c.Generate(ctx, full)
	if err != nil {
		return err
	}

	Decode(text, out)
	return nil
}

// Decode parses raw model output into out, tolerating a markdown code
// fence around the JSON. On parse failure out is reset to its zero value
// rather than left half-filled.
func Decode(raw string, out any) {
	text := StripFences(raw)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		Zero(out)
	}
}

// StripFences removes a surrounding ```json ... ``` (or plain ```) fence.
func StripFences(s string) string {
	text := strings.TrimSpace(s)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}
