package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a veterinary assistant helping pet and livestock owners.
Answer questions about animal health conditions, care and treatment in clear,
non-technical language. Always recommend consulting a veterinarian for serious
or worsening symptoms.`

type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIResponder struct {
	client      completer
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

func NewOpenAIResponder(apiKey string, model string) *OpenAIResponder {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIResponder{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   512,
		temperature: 0.7,
		timeout:     30 * time.Second,
	}
}

// Respond sends the latest user message to the model. The call is bounded by
// the responder timeout and retried once on failure.
func (r *OpenAIResponder) Respond(ctx context.Context, content string, predictionContext string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if predictionContext != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("The user's pet received an image-based diagnosis of: %s.", predictionContext),
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})

	req := openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		resp, err := r.client.CreateChatCompletion(callCtx, req)
		cancel()
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("empty completion response")
			continue
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
	return "", fmt.Errorf("chat completion failed: %w", lastErr)
}
