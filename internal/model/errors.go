package model

import "errors"

// Sentinel errors shared between storage implementations and the usecases
// that consume them through interfaces.
var (
	ErrTelegramUserDoesNotExists = errors.New("telegram user doesn't exists")
	ErrConversationDoesNotExist  = errors.New("conversation does not exist")
	ErrNoActiveConversation      = errors.New("user has no active conversation")
	ErrIngredientNotFound        = errors.New("ingredient not found")
	ErrNoRecipeMatch             = errors.New("no recipe matches the preferences")
)
