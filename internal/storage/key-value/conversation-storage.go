package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
	"github.com/redis/go-redis/v9"
)

const conversationSeqKey = "conversation_seq"

type conversationInternal struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	State    string `json:"state"`
	Resumes  string `json:"resumes,omitempty"`
	Sequence int64  `json:"sequence"`
}

type userConversationIDs struct {
	Conversations []string `json:"conversations"`
}

type ConversationStorage struct {
	rdb *redis.Client
}

func NewConversationStorage(rdb *redis.Client) *ConversationStorage {
	return &ConversationStorage{
		rdb: rdb,
	}
}

func (s *ConversationStorage) CreateConversation(
	ctx context.Context, userID uuid.UUID, state model.ConversationState, resumes uuid.UUID,
) (model.Conversation, error) {
	sequence, err := s.rdb.Incr(ctx, conversationSeqKey).Result()
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to increment conversation sequence: %w", err)
	}
	conversationID := uuid.New()
	conversationInt := conversationInternal{
		ID:       conversationID.String(),
		UserID:   userID.String(),
		State:    string(state),
		Sequence: sequence,
	}
	if resumes != uuid.Nil {
		conversationInt.Resumes = resumes.String()
	}
	if err = s.setConversationInt(ctx, conversationID, conversationInt); err != nil {
		return model.Conversation{}, fmt.Errorf("failed to set conversation internal %s: %w", conversationID, err)
	}

	ids, err := s.getUserConversationIDs(ctx, userID)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to get user conversation ids: %w", err)
	}
	ids.Conversations = append(ids.Conversations, conversationID.String())
	if err = s.setUserConversationIDs(ctx, userID, ids); err != nil {
		return model.Conversation{}, fmt.Errorf("failed to set user conversation ids: %w", err)
	}
	return conversationFromInternal(conversationInt)
}

func (s *ConversationStorage) GetConversation(
	ctx context.Context, conversationID uuid.UUID,
) (model.Conversation, error) {
	conversationInt, err := s.getConversationInt(ctx, conversationID)
	if err != nil {
		return model.Conversation{}, err
	}
	return conversationFromInternal(conversationInt)
}

func (s *ConversationStorage) UpdateConversationState(
	ctx context.Context, conversationID uuid.UUID, state model.ConversationState,
) error {
	conversationInt, err := s.getConversationInt(ctx, conversationID)
	if err != nil {
		return err
	}
	conversationInt.State = string(state)
	if err = s.setConversationInt(ctx, conversationID, conversationInt); err != nil {
		return fmt.Errorf("failed to set conversation internal %s: %w", conversationID, err)
	}
	return nil
}

// GetActiveConversation scans only this user's conversation index, newest
// first, so one user's unfinished session can never leak into another's.
func (s *ConversationStorage) GetActiveConversation(
	ctx context.Context, userID uuid.UUID,
) (model.Conversation, error) {
	conversations, err := s.ListUserConversations(ctx, userID)
	if err != nil {
		return model.Conversation{}, err
	}
	for i := len(conversations) - 1; i >= 0; i-- {
		if !conversations[i].State.Terminal() {
			return conversations[i], nil
		}
	}
	return model.Conversation{}, model.ErrNoActiveConversation
}

func (s *ConversationStorage) CloseUserConversations(ctx context.Context, userID uuid.UUID) error {
	conversations, err := s.ListUserConversations(ctx, userID)
	if err != nil {
		return err
	}
	for _, conversation := range conversations {
		if conversation.State.Terminal() {
			continue
		}
		if err = s.UpdateConversationState(ctx, conversation.ID, model.StateEnd); err != nil {
			return fmt.Errorf("failed to close conversation %s: %w", conversation.ID, err)
		}
	}
	return nil
}

func (s *ConversationStorage) ListUserConversations(
	ctx context.Context, userID uuid.UUID,
) ([]model.Conversation, error) {
	ids, err := s.getUserConversationIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user conversation ids: %w", err)
	}
	conversations := make([]model.Conversation, 0, len(ids.Conversations))
	for _, conversationIDStr := range ids.Conversations {
		conversationID, err := uuid.Parse(conversationIDStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse conversationID %s: %w", conversationIDStr, err)
		}
		conversation, err := s.GetConversation(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to get conversation %s: %w", conversationID, err)
		}
		conversations = append(conversations, conversation)
	}
	return conversations, nil
}

func (s *ConversationStorage) getConversationInt(
	ctx context.Context, conversationID uuid.UUID,
) (conversationInternal, error) {
	conversationKey := getConversationKey(conversationID)
	conversationRaw, err := s.rdb.Get(ctx, conversationKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return conversationInternal{}, model.ErrConversationDoesNotExist
		}
		return conversationInternal{}, fmt.Errorf("failed to get conversation %s: %w", conversationID, err)
	}
	var conversationInt conversationInternal
	if err = json.Unmarshal([]byte(conversationRaw), &conversationInt); err != nil {
		return conversationInternal{}, fmt.Errorf("failed to unmarshal conversation %s: %w", conversationID, err)
	}
	return conversationInt, nil
}

func (s *ConversationStorage) setConversationInt(
	ctx context.Context, conversationID uuid.UUID, conversationInt conversationInternal,
) error {
	conversationJSON, err := json.Marshal(conversationInt)
	if err != nil {
		return fmt.Errorf("failed to marshal internal conversation: %w", err)
	}
	conversationKey := getConversationKey(conversationID)
	if err = s.rdb.Set(ctx, conversationKey, conversationJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save conversationInternal %s: %w", conversationKey, err)
	}
	return nil
}

func (s *ConversationStorage) getUserConversationIDs(
	ctx context.Context, userID uuid.UUID,
) (userConversationIDs, error) {
	userConversationsKey := getUserConversationsKey(userID)
	idsRaw, err := s.rdb.Get(ctx, userConversationsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return userConversationIDs{Conversations: make([]string, 0)}, nil
		}
		return userConversationIDs{}, fmt.Errorf("failed to get userConversationIDs %s: %w", userID, err)
	}
	var ids userConversationIDs
	if err = json.Unmarshal([]byte(idsRaw), &ids); err != nil {
		return userConversationIDs{}, fmt.Errorf("failed to unmarshal userConversationIDs %s: %w", userID, err)
	}
	return ids, nil
}

func (s *ConversationStorage) setUserConversationIDs(
	ctx context.Context, userID uuid.UUID, ids userConversationIDs,
) error {
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal user conversation ids: %w", err)
	}
	userConversationsKey := getUserConversationsKey(userID)
	if err = s.rdb.Set(ctx, userConversationsKey, idsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save user conversation ids %s: %w", userConversationsKey, err)
	}
	return nil
}

func conversationFromInternal(conversationInt conversationInternal) (model.Conversation, error) {
	conversationID, err := uuid.Parse(conversationInt.ID)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to parse conversationID %s: %w", conversationInt.ID, err)
	}
	userID, err := uuid.Parse(conversationInt.UserID)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to parse userID %s: %w", conversationInt.UserID, err)
	}
	resumes := uuid.Nil
	if conversationInt.Resumes != "" {
		resumes, err = uuid.Parse(conversationInt.Resumes)
		if err != nil {
			return model.Conversation{}, fmt.Errorf("failed to parse resumes id %s: %w", conversationInt.Resumes, err)
		}
	}
	return model.Conversation{
		ID:       conversationID,
		UserID:   userID,
		State:    model.ConversationState(conversationInt.State),
		Resumes:  resumes,
		Sequence: conversationInt.Sequence,
	}, nil
}

func getConversationKey(conversationID uuid.UUID) string {
	return fmt.Sprintf("conversation_%v", conversationID.String())
}

func getUserConversationsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user_conversations_%v", userID.String())
}
