package model

import (
	"github.com/google/uuid"
)

type ConversationState string

const (
	StateAskPreferences     = ConversationState("ask_preferences")
	StateRestrictionsChoice = ConversationState("restrictions_choice")
	StateExcludeProducts    = ConversationState("exclude_products")
	StateIncludeProducts    = ConversationState("include_products")
	StateGiveRecipe         = ConversationState("give_recipe")
	StateContinueChoice     = ConversationState("continue_choice")
	StateEnd                = ConversationState("end")
)

// Terminal reports whether the conversation is finished. A terminal
// conversation is never reopened.
func (s ConversationState) Terminal() bool {
	return s == StateEnd
}

// AwaitsInput reports whether the state consumes the user's next message.
// The remaining non-terminal states advance on their own.
func (s ConversationState) AwaitsInput() bool {
	switch s {
	case StateRestrictionsChoice, StateExcludeProducts, StateIncludeProducts, StateContinueChoice:
		return true
	}
	return false
}

// Conversation is one recipe-request session. Resumes is set only on
// continue_choice conversations and references the unfinished conversation
// the user is being offered to pick back up. Sequence reflects creation
// order across all conversations.
type Conversation struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	State    ConversationState
	Resumes  uuid.UUID
	Sequence int64
}
