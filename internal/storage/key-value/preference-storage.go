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

type preferenceInternal struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	IngredientID   int64  `json:"ingredient_id"`
	Preferable     bool   `json:"preferable"`
}

type conversationPreferences struct {
	Preferences []preferenceInternal `json:"preferences"`
}

type PreferenceStorage struct {
	rdb *redis.Client
}

func NewPreferenceStorage(rdb *redis.Client) *PreferenceStorage {
	return &PreferenceStorage{
		rdb: rdb,
	}
}

// AddPreference persists one constraint immediately; items recorded before a
// later failure stay durable.
func (s *PreferenceStorage) AddPreference(
	ctx context.Context, conversationID uuid.UUID, ingredientID int64, preferable bool,
) (model.Preference, error) {
	preferencesInt, err := s.getConversationPreferences(ctx, conversationID)
	if err != nil {
		return model.Preference{}, err
	}
	preferenceID := uuid.New()
	preferenceInt := preferenceInternal{
		ID:             preferenceID.String(),
		ConversationID: conversationID.String(),
		IngredientID:   ingredientID,
		Preferable:     preferable,
	}
	preferencesInt.Preferences = append(preferencesInt.Preferences, preferenceInt)
	if err = s.setConversationPreferences(ctx, conversationID, preferencesInt); err != nil {
		return model.Preference{}, err
	}
	return model.Preference{
		ID:             preferenceID,
		ConversationID: conversationID,
		IngredientID:   ingredientID,
		Preferable:     preferable,
	}, nil
}

func (s *PreferenceStorage) ListConversationPreferences(
	ctx context.Context, conversationID uuid.UUID,
) ([]model.Preference, error) {
	preferencesInt, err := s.getConversationPreferences(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	preferences := make([]model.Preference, 0, len(preferencesInt.Preferences))
	for _, preferenceInt := range preferencesInt.Preferences {
		preferenceID, err := uuid.Parse(preferenceInt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse preferenceID %s: %w", preferenceInt.ID, err)
		}
		preferences = append(
			preferences, model.Preference{
				ID:             preferenceID,
				ConversationID: conversationID,
				IngredientID:   preferenceInt.IngredientID,
				Preferable:     preferenceInt.Preferable,
			},
		)
	}
	return preferences, nil
}

func (s *PreferenceStorage) getConversationPreferences(
	ctx context.Context, conversationID uuid.UUID,
) (conversationPreferences, error) {
	preferencesKey := getConversationPreferencesKey(conversationID)
	preferencesRaw, err := s.rdb.Get(ctx, preferencesKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return conversationPreferences{Preferences: make([]preferenceInternal, 0)}, nil
		}
		return conversationPreferences{}, fmt.Errorf(
			"failed to get conversation preferences %s: %w", conversationID, err,
		)
	}
	var preferencesInt conversationPreferences
	if err = json.Unmarshal([]byte(preferencesRaw), &preferencesInt); err != nil {
		return conversationPreferences{}, fmt.Errorf(
			"failed to unmarshal conversation preferences %s: %w", conversationID, err,
		)
	}
	return preferencesInt, nil
}

func (s *PreferenceStorage) setConversationPreferences(
	ctx context.Context, conversationID uuid.UUID, preferencesInt conversationPreferences,
) error {
	preferencesJSON, err := json.Marshal(preferencesInt)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation preferences: %w", err)
	}
	preferencesKey := getConversationPreferencesKey(conversationID)
	if err = s.rdb.Set(ctx, preferencesKey, preferencesJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save conversation preferences %s: %w", preferencesKey, err)
	}
	return nil
}

func getConversationPreferencesKey(conversationID uuid.UUID) string {
	return fmt.Sprintf("conversation_preferences_%v", conversationID.String())
}
