package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vderm-x/vetcare-app/models"
	"gorm.io/gorm"
)

type fakeResponder struct {
	reply    string
	err      error
	lastCtx  string
	numCalls int
}

func (f *fakeResponder) Respond(ctx context.Context, content string, predictionContext string) (string, error) {
	f.numCalls++
	f.lastCtx = predictionContext
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(responder *fakeResponder) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, responder), store
}

func TestCreateConversationDefaultsTitleFromDiagnosis(t *testing.T) {
	svc, store := newTestService(&fakeResponder{})
	store.AddDiagnosis(models.DiagnosisHistory{
		Model:      gorm.Model{ID: 7},
		UserID:     1,
		Prediction: models.Prediction{Classification: "Lumpy Skin", Confidence: []float64{0.92, 0.08}},
	})

	diagnosisID := uint(7)
	conv, err := svc.CreateConversation(1, &diagnosisID, "")
	require.NoError(t, err)

	want := DefaultTitle("Lumpy Skin", time.Now())
	assert.Equal(t, want, conv.Title)
	assert.Equal(t, uint(1), conv.UserID)
	require.NotNil(t, conv.DiagnosisID)
	assert.Equal(t, uint(7), *conv.DiagnosisID)
}

func TestCreateConversationWithoutDiagnosis(t *testing.T) {
	svc, _ := newTestService(&fakeResponder{})

	conv, err := svc.CreateConversation(1, nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle("", time.Now()), conv.Title)

	titled, err := svc.CreateConversation(1, nil, "My dog's rash")
	require.NoError(t, err)
	assert.Equal(t, "My dog's rash", titled.Title)
}

func TestCreateConversationUnknownDiagnosis(t *testing.T) {
	svc, _ := newTestService(&fakeResponder{})

	missing := uint(99)
	_, err := svc.CreateConversation(1, &missing, "")
	assert.ErrorIs(t, err, ErrDiagnosisNotFound)
}

func TestSendMessagePersistsExactlyTwoMessages(t *testing.T) {
	responder := &fakeResponder{reply: "Keep the wound clean and dry."}
	svc, _ := newTestService(responder)

	conv, err := svc.CreateConversation(1, nil, "")
	require.NoError(t, err)

	userMsg, aiMsg, err := svc.SendMessage(context.Background(), 1, conv.ID, "My cow has skin lumps")
	require.NoError(t, err)

	assert.Equal(t, models.MessageRoleUser, userMsg.Role)
	assert.Equal(t, "My cow has skin lumps", userMsg.Content)
	assert.Equal(t, models.MessageRoleAssistant, aiMsg.Role)
	assert.Equal(t, "Keep the wound clean and dry.", aiMsg.Content)

	messages, err := svc.Messages(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.MessageRoleUser, messages[0].Role)
	assert.Equal(t, models.MessageRoleAssistant, messages[1].Role)
}

func TestSendMessageResponderFailureCommitsNothing(t *testing.T) {
	responder := &fakeResponder{err: errors.New("model unavailable")}
	svc, _ := newTestService(responder)

	conv, err := svc.CreateConversation(1, nil, "")
	require.NoError(t, err)

	_, _, err = svc.SendMessage(context.Background(), 1, conv.ID, "hello")
	require.ErrorIs(t, err, ErrResponder)

	messages, err := svc.Messages(conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages, "a failed exchange must not leave an orphaned user message")
}

func TestSendMessageForwardsDiagnosisContext(t *testing.T) {
	responder := &fakeResponder{reply: "ok"}
	svc, store := newTestService(responder)
	store.AddDiagnosis(models.DiagnosisHistory{
		Model:      gorm.Model{ID: 3},
		UserID:     1,
		Prediction: models.Prediction{Classification: "Lumpy Skin", Confidence: []float64{0.9, 0.1}},
	})

	diagnosisID := uint(3)
	conv, err := svc.CreateConversation(1, &diagnosisID, "")
	require.NoError(t, err)

	userMsg, _, err := svc.SendMessage(context.Background(), 1, conv.ID, "Is it contagious?")
	require.NoError(t, err)

	assert.Equal(t, "Lumpy Skin", responder.lastCtx)
	require.NotNil(t, userMsg.Metadata)
	assert.Equal(t, "Lumpy Skin", userMsg.Metadata.PredictionData["classification"])
}

func TestSendMessageOwnershipAndExistence(t *testing.T) {
	svc, _ := newTestService(&fakeResponder{reply: "ok"})

	conv, err := svc.CreateConversation(1, nil, "")
	require.NoError(t, err)

	_, _, err = svc.SendMessage(context.Background(), 2, conv.ID, "hi")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, _, err = svc.SendMessage(context.Background(), 1, 999, "hi")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestMessagesAreTimestampOrdered(t *testing.T) {
	responder := &fakeResponder{reply: "reply"}
	svc, _ := newTestService(responder)

	conv, err := svc.CreateConversation(1, nil, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := svc.SendMessage(context.Background(), 1, conv.ID, "message")
		require.NoError(t, err)
	}

	messages, err := svc.Messages(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 6)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].Timestamp.Before(messages[i-1].Timestamp),
			"messages must be in non-decreasing timestamp order")
	}
}

func TestListConversationsNewestFirst(t *testing.T) {
	responder := &fakeResponder{reply: "reply"}
	svc, _ := newTestService(responder)

	first, err := svc.CreateConversation(1, nil, "first")
	require.NoError(t, err)
	_, err = svc.CreateConversation(1, nil, "second")
	require.NoError(t, err)
	_, err = svc.CreateConversation(2, nil, "other user")
	require.NoError(t, err)

	// Sending a message touches the conversation's update time.
	time.Sleep(5 * time.Millisecond)
	_, _, err = svc.SendMessage(context.Background(), 1, first.ID, "bump")
	require.NoError(t, err)

	convs, err := svc.ListConversations(1)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "first", convs[0].Title)
	assert.Equal(t, "second", convs[1].Title)
}

func TestDeleteConversation(t *testing.T) {
	responder := &fakeResponder{reply: "reply"}
	svc, _ := newTestService(responder)

	conv, err := svc.CreateConversation(1, nil, "")
	require.NoError(t, err)
	_, _, err = svc.SendMessage(context.Background(), 1, conv.ID, "hello")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteConversation(conv.ID, 2), ErrNotOwner)
	assert.ErrorIs(t, svc.DeleteConversation(999, 1), ErrConversationNotFound)

	require.NoError(t, svc.DeleteConversation(conv.ID, 1))
	_, err = svc.ListConversations(1)
	require.NoError(t, err)

	messages, err := svc.Messages(conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages, "deleting a conversation removes its messages")
}

func TestEmptyListsAreNotNil(t *testing.T) {
	svc, _ := newTestService(&fakeResponder{})

	// A nil slice would serialize as JSON null instead of [].
	convs, err := svc.ListConversations(42)
	require.NoError(t, err)
	assert.NotNil(t, convs)
	assert.Empty(t, convs)

	messages, err := svc.Messages(42)
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestDefaultTitle(t *testing.T) {
	jan18 := time.Date(2025, time.January, 18, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Chat about Lumpy Skin - Jan 18", DefaultTitle("Lumpy Skin", jan18))
	assert.Equal(t, "New Conversation - Jan 18", DefaultTitle("", jan18))
}
