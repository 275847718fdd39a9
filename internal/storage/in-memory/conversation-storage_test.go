package in_memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveConversationIsNewestNonTerminal(t *testing.T) {
	ctx := context.Background()
	storage := NewConversationStorage()
	userID := uuid.New()

	first, err := storage.CreateConversation(ctx, userID, model.StateIncludeProducts, uuid.Nil)
	require.NoError(t, err)
	second, err := storage.CreateConversation(ctx, userID, model.StateContinueChoice, first.ID)
	require.NoError(t, err)
	assert.Greater(t, second.Sequence, first.Sequence)

	active, err := storage.GetActiveConversation(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	require.NoError(t, storage.UpdateConversationState(ctx, second.ID, model.StateEnd))
	active, err = storage.GetActiveConversation(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestActiveConversationScopedToUser(t *testing.T) {
	ctx := context.Background()
	storage := NewConversationStorage()
	userA := uuid.New()
	userB := uuid.New()

	_, err := storage.CreateConversation(ctx, userA, model.StateRestrictionsChoice, uuid.Nil)
	require.NoError(t, err)

	// another user's open conversation must stay invisible
	_, err = storage.GetActiveConversation(ctx, userB)
	assert.ErrorIs(t, err, model.ErrNoActiveConversation)
}

func TestCloseUserConversations(t *testing.T) {
	ctx := context.Background()
	storage := NewConversationStorage()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := storage.CreateConversation(ctx, userID, model.StateAskPreferences, uuid.Nil)
		require.NoError(t, err)
	}
	require.NoError(t, storage.CloseUserConversations(ctx, userID))

	conversations, err := storage.ListUserConversations(ctx, userID)
	require.NoError(t, err)
	require.Len(t, conversations, 3)
	for _, conversation := range conversations {
		assert.Equal(t, model.StateEnd, conversation.State)
	}

	_, err = storage.GetActiveConversation(ctx, userID)
	assert.ErrorIs(t, err, model.ErrNoActiveConversation)
}
