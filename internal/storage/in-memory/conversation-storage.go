package in_memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
)

type ConversationStorage struct {
	conversations     map[uuid.UUID]*model.Conversation
	userConversations map[uuid.UUID][]uuid.UUID
	sequence          int64
}

func NewConversationStorage() *ConversationStorage {
	return &ConversationStorage{
		conversations:     make(map[uuid.UUID]*model.Conversation),
		userConversations: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *ConversationStorage) CreateConversation(
	_ context.Context, userID uuid.UUID, state model.ConversationState, resumes uuid.UUID,
) (model.Conversation, error) {
	s.sequence++
	conversation := model.Conversation{
		ID:       uuid.New(),
		UserID:   userID,
		State:    state,
		Resumes:  resumes,
		Sequence: s.sequence,
	}
	s.conversations[conversation.ID] = &conversation
	s.userConversations[userID] = append(s.userConversations[userID], conversation.ID)
	return conversation, nil
}

func (s *ConversationStorage) GetConversation(
	_ context.Context, conversationID uuid.UUID,
) (model.Conversation, error) {
	conversation, ok := s.conversations[conversationID]
	if !ok {
		return model.Conversation{}, model.ErrConversationDoesNotExist
	}
	return *conversation, nil
}

func (s *ConversationStorage) UpdateConversationState(
	_ context.Context, conversationID uuid.UUID, state model.ConversationState,
) error {
	conversation, ok := s.conversations[conversationID]
	if !ok {
		return model.ErrConversationDoesNotExist
	}
	conversation.State = state
	return nil
}

// GetActiveConversation returns the user's newest non-terminal conversation.
// Only this user's conversations are consulted.
func (s *ConversationStorage) GetActiveConversation(
	_ context.Context, userID uuid.UUID,
) (model.Conversation, error) {
	conversationIDs := s.userConversations[userID]
	for i := len(conversationIDs) - 1; i >= 0; i-- {
		conversation := s.conversations[conversationIDs[i]]
		if !conversation.State.Terminal() {
			return *conversation, nil
		}
	}
	return model.Conversation{}, model.ErrNoActiveConversation
}

func (s *ConversationStorage) CloseUserConversations(_ context.Context, userID uuid.UUID) error {
	for _, conversationID := range s.userConversations[userID] {
		conversation := s.conversations[conversationID]
		if !conversation.State.Terminal() {
			conversation.State = model.StateEnd
		}
	}
	return nil
}

func (s *ConversationStorage) ListUserConversations(
	_ context.Context, userID uuid.UUID,
) ([]model.Conversation, error) {
	conversationIDs := s.userConversations[userID]
	conversations := make([]model.Conversation, 0, len(conversationIDs))
	for _, conversationID := range conversationIDs {
		conversations = append(conversations, *s.conversations[conversationID])
	}
	return conversations, nil
}
