package in_memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
)

type PreferenceStorage struct {
	preferences map[uuid.UUID][]model.Preference
}

func NewPreferenceStorage() *PreferenceStorage {
	return &PreferenceStorage{
		preferences: make(map[uuid.UUID][]model.Preference),
	}
}

func (s *PreferenceStorage) AddPreference(
	_ context.Context, conversationID uuid.UUID, ingredientID int64, preferable bool,
) (model.Preference, error) {
	preference := model.Preference{
		ID:             uuid.New(),
		ConversationID: conversationID,
		IngredientID:   ingredientID,
		Preferable:     preferable,
	}
	s.preferences[conversationID] = append(s.preferences[conversationID], preference)
	return preference, nil
}

func (s *PreferenceStorage) ListConversationPreferences(
	_ context.Context, conversationID uuid.UUID,
) ([]model.Preference, error) {
	preferences := make([]model.Preference, 0, len(s.preferences[conversationID]))
	preferences = append(preferences, s.preferences[conversationID]...)
	return preferences, nil
}
