// Package suggest wraps the optional remote suggestion service that proposes
// improvements for collected prompt components. The service may be absent
// (no credentials, provider "none"); absence is a reduced-capability mode of
// the wizard, never an error.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultMetaprompt is the built-in system prompt used when no metaprompt
// file exists in the config directory.
const DefaultMetaprompt = `You are an expert prompt engineering assistant specialized in creating high-quality prompts.

Your role is to:
1. Analyze user inputs and suggest improvements
2. Identify missing components that would enhance prompt quality
3. Provide specific, actionable suggestions
4. Ensure clarity and completeness

When given a prompt component, suggest improvements that:
- Make instructions clearer and more specific
- Add relevant constraints or guidelines
- Include helpful examples when appropriate
- Optimize for the intended use case

Keep suggestions concise and actionable. Focus on quality over quantity.`

// Suggester is the interface the wizard uses to request an improvement for a
// single component. Implementations must be safe to call sequentially from a
// single wizard run; errors are recovered by the caller, which keeps the
// current value unmodified.
type Suggester interface {
	Suggest(ctx context.Context, field, currentValue string) (string, error)
}

// ConstructPrompt builds the user message sent to the suggestion service for
// one component. An empty current value is reported as not provided yet.
func ConstructPrompt(field, currentValue string) string {
	if strings.TrimSpace(currentValue) == "" {
		currentValue = "Not provided yet"
	}

	var b strings.Builder
	b.WriteString("Component: ")
	b.WriteString(field)
	b.WriteString("\nCurrent Value: ")
	b.WriteString(currentValue)
	b.WriteString("\n\n")
	b.WriteString("Provide a brief suggestion to improve this component. Be specific and actionable.\n")
	b.WriteString("If the current value is good, suggest a minor enhancement or confirm it's well-written.")
	return b.String()
}

// OpenAIClient implements Suggester against the OpenAI chat completion API.
type OpenAIClient struct {
	client     *openai.Client
	modelName  string
	metaprompt string
}

// NewOpenAIClient creates a suggestion client. It requires a configured
// go-openai client; modelName defaults to gpt-4o and metaprompt to
// DefaultMetaprompt when empty.
func NewOpenAIClient(client *openai.Client, modelName, metaprompt string) (*OpenAIClient, error) {
	if client == nil {
		return nil, ErrClientNil
	}
	if modelName == "" {
		log.Warn().Msg("modelName is empty for suggestion client, defaulting to gpt-4o")
		modelName = openai.GPT4o
	}
	if strings.TrimSpace(metaprompt) == "" {
		metaprompt = DefaultMetaprompt
	}
	return &OpenAIClient{
		client:     client,
		modelName:  modelName,
		metaprompt: metaprompt,
	}, nil
}

// Suggest implements the Suggester interface for OpenAI. The call is
// synchronous with no retry policy; the caller degrades gracefully on error.
func (o *OpenAIClient) Suggest(ctx context.Context, field, currentValue string) (string, error) {
	if o.client == nil {
		return "", ErrClientNil
	}

	userPrompt := ConstructPrompt(field, currentValue)
	log.Debug().Str("field", field).Str("model", o.modelName).Msg("Requesting component suggestion")

	req := openai.ChatCompletionRequest{
		Model:     o.modelName,
		MaxTokens: 500,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.metaprompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("field", field).Msg("Suggestion API call failed")
		return "", fmt.Errorf("%w: %w", ErrCompletion, err)
	}

	if len(resp.Choices) == 0 {
		log.Error().Str("field", field).Msg("Suggestion service returned no choices")
		return "", ErrEmptyResponse
	}

	suggestion := strings.TrimSpace(resp.Choices[0].Message.Content)
	if suggestion == "" {
		return "", ErrEmptyResponse
	}

	log.Debug().Str("field", field).Msg("Received component suggestion")
	return suggestion, nil
}
