package model

import (
	"github.com/google/uuid"
)

// Preference is a single must-include or must-exclude constraint recorded
// during one conversation. Preferable true means the ingredient is required,
// false means it is forbidden. Preferences are immutable once written.
type Preference struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	IngredientID   int64
	Preferable     bool
}
