package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCompleter struct {
	responses []func() (openai.ChatCompletionResponse, error)
	requests  []openai.ChatCompletionRequest
}

func (s *scriptedCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	next := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return next()
}

func reply(content string) func() (openai.ChatCompletionResponse, error) {
	return func() (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: content}},
			},
		}, nil
	}
}

func fail(err error) func() (openai.ChatCompletionResponse, error) {
	return func() (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{}, err
	}
}

func newTestResponder(c completer) *OpenAIResponder {
	return &OpenAIResponder{
		client:  c,
		model:   openai.GPT4oMini,
		timeout: time.Second,
	}
}

func TestRespondReturnsTrimmedReply(t *testing.T) {
	c := &scriptedCompleter{responses: []func() (openai.ChatCompletionResponse, error){
		reply("  Keep the area clean.  "),
	}}
	r := newTestResponder(c)

	got, err := r.Respond(context.Background(), "What should I do?", "")
	require.NoError(t, err)
	assert.Equal(t, "Keep the area clean.", got)
	require.Len(t, c.requests, 1)
}

func TestRespondRetriesOnceOnFailure(t *testing.T) {
	c := &scriptedCompleter{responses: []func() (openai.ChatCompletionResponse, error){
		fail(errors.New("rate limited")),
		reply("second attempt"),
	}}
	r := newTestResponder(c)

	got, err := r.Respond(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "second attempt", got)
	assert.Len(t, c.requests, 2)
}

func TestRespondGivesUpAfterTwoFailures(t *testing.T) {
	c := &scriptedCompleter{responses: []func() (openai.ChatCompletionResponse, error){
		fail(errors.New("down")),
	}}
	r := newTestResponder(c)

	_, err := r.Respond(context.Background(), "hello", "")
	require.Error(t, err)
	assert.Len(t, c.requests, 2)
}

func TestRespondStopsWhenCallerCancels(t *testing.T) {
	c := &scriptedCompleter{responses: []func() (openai.ChatCompletionResponse, error){
		fail(context.Canceled),
	}}
	r := newTestResponder(c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Respond(ctx, "hello", "")
	require.Error(t, err)
	assert.Len(t, c.requests, 1, "no retry after caller cancellation")
}

func TestRespondIncludesDiagnosisContext(t *testing.T) {
	c := &scriptedCompleter{responses: []func() (openai.ChatCompletionResponse, error){
		reply("ok"),
	}}
	r := newTestResponder(c)

	_, err := r.Respond(context.Background(), "Is it serious?", "Lumpy Skin")
	require.NoError(t, err)

	require.Len(t, c.requests, 1)
	messages := c.requests[0].Messages
	require.Len(t, messages, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
	assert.Contains(t, messages[1].Content, "Lumpy Skin")
	assert.Equal(t, openai.ChatMessageRoleUser, messages[2].Role)
	assert.Equal(t, "Is it serious?", messages[2].Content)
}
