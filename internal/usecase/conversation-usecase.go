package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
	"github.com/iamvkosarev/recipe-telegram-bot/pkg/local"
)

type ConversationStorage interface {
	CreateConversation(
		ctx context.Context, userID uuid.UUID, state model.ConversationState, resumes uuid.UUID,
	) (model.Conversation, error)
	GetConversation(ctx context.Context, conversationID uuid.UUID) (model.Conversation, error)
	UpdateConversationState(ctx context.Context, conversationID uuid.UUID, state model.ConversationState) error
	// GetActiveConversation returns the user's newest non-terminal conversation
	// or model.ErrNoActiveConversation.
	GetActiveConversation(ctx context.Context, userID uuid.UUID) (model.Conversation, error)
	// CloseUserConversations transitions every non-terminal conversation of
	// the user to the end state.
	CloseUserConversations(ctx context.Context, userID uuid.UUID) error
}

type PreferenceStorage interface {
	AddPreference(
		ctx context.Context, conversationID uuid.UUID, ingredientID int64, preferable bool,
	) (model.Preference, error)
	ListConversationPreferences(ctx context.Context, conversationID uuid.UUID) ([]model.Preference, error)
}

type CatalogStorage interface {
	// GetIngredientByName looks an ingredient up by its normalized name and
	// returns model.ErrIngredientNotFound on a miss.
	GetIngredientByName(ctx context.Context, name string) (model.Ingredient, error)
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
}

// Gateway delivers prompts to the chat the conversation belongs to.
type Gateway interface {
	Send(ctx context.Context, chatID int64, prompt model.Prompt) error
}

type ConversationUsecaseDeps struct {
	Conversations ConversationStorage
	Preferences   PreferenceStorage
	Catalog       CatalogStorage
	Recipes       *RecipeUsecase
	Gateway       Gateway
}

// ConversationUsecase drives a single conversation from creation to its end
// state: it routes inbound messages by the persisted conversation state and
// decides which prompt to issue next.
type ConversationUsecase struct {
	ConversationUsecaseDeps
	lang          local.Language
	continuations *continuationSet
}

func NewConversationUsecase(deps ConversationUsecaseDeps, lang local.Language) *ConversationUsecase {
	return &ConversationUsecase{
		ConversationUsecaseDeps: deps,
		lang:                    lang,
		continuations:           newContinuationSet(),
	}
}

// StartRequest begins a new recipe request, force-closing any other
// conversation of the user first so at most one stays non-terminal.
func (c *ConversationUsecase) StartRequest(ctx context.Context, user model.User) error {
	c.continuations.drop(user.UserID)
	if err := c.Conversations.CloseUserConversations(ctx, user.UserID); err != nil {
		return fmt.Errorf("failed to close user conversations: %w", err)
	}
	conversation, err := c.Conversations.CreateConversation(ctx, user.UserID, model.StateAskPreferences, uuid.Nil)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return c.advance(ctx, user, conversation)
}

// HandleMessage routes one inbound free-text message: to the conversation the
// user's continuation points at, or through the fallback path.
func (c *ConversationUsecase) HandleMessage(ctx context.Context, user model.User, text string) error {
	conversationID, ok := c.continuations.take(user.UserID)
	if !ok {
		return c.fallback(ctx, user)
	}
	conversation, err := c.Conversations.GetConversation(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to get conversation %s: %w", conversationID, err)
	}
	if conversation.State.Terminal() {
		return c.fallback(ctx, user)
	}
	return c.consume(ctx, user, conversation, text)
}

// advance runs states that do not wait for user input until the conversation
// either parks on a waiting state or ends.
func (c *ConversationUsecase) advance(ctx context.Context, user model.User, conversation model.Conversation) error {
	for {
		switch conversation.State {
		case model.StateAskPreferences:
			if err := c.Gateway.Send(ctx, user.TelegramID, restrictionsMenu(c.lang)); err != nil {
				return fmt.Errorf("failed to send restrictions menu: %w", err)
			}
			if err := c.setState(ctx, &conversation, model.StateRestrictionsChoice); err != nil {
				return err
			}
			c.continuations.register(user.UserID, conversation.ID)
			return nil
		case model.StateGiveRecipe:
			next, err := c.giveRecipe(ctx, user, conversation)
			if err != nil {
				return err
			}
			if err = c.setState(ctx, &conversation, next); err != nil {
				return err
			}
			if conversation.State.Terminal() {
				return nil
			}
		default:
			return nil
		}
	}
}

// consume applies one inbound message to a conversation parked on a waiting
// state.
func (c *ConversationUsecase) consume(
	ctx context.Context, user model.User, conversation model.Conversation, text string,
) error {
	switch conversation.State {
	case model.StateRestrictionsChoice:
		return c.restrictionsChoice(ctx, user, conversation, text)
	case model.StateExcludeProducts:
		return c.recordPreferences(ctx, user, conversation, text, false)
	case model.StateIncludeProducts:
		return c.recordPreferences(ctx, user, conversation, text, true)
	case model.StateContinueChoice:
		return c.continueChoice(ctx, user, conversation, text)
	}
	// a continuation should never point at a non-waiting state; drive the
	// conversation forward instead of dropping it
	return c.advance(ctx, user, conversation)
}

func (c *ConversationUsecase) restrictionsChoice(
	ctx context.Context, user model.User, conversation model.Conversation, text string,
) error {
	switch strings.TrimSpace(text) {
	case optExcludeProducts.Text(c.lang):
		if err := c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: msgAskExcludeList.Text(c.lang)}); err != nil {
			return fmt.Errorf("failed to send exclude prompt: %w", err)
		}
		if err := c.setState(ctx, &conversation, model.StateExcludeProducts); err != nil {
			return err
		}
	case optIncludeProducts.Text(c.lang):
		if err := c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: msgAskIncludeList.Text(c.lang)}); err != nil {
			return fmt.Errorf("failed to send include prompt: %w", err)
		}
		if err := c.setState(ctx, &conversation, model.StateIncludeProducts); err != nil {
			return err
		}
	case optGiveRecipe.Text(c.lang):
		if err := c.setState(ctx, &conversation, model.StateGiveRecipe); err != nil {
			return err
		}
		return c.advance(ctx, user, conversation)
	default:
		// unrecognized choice: no state change, the keyboard is still on screen
	}
	c.continuations.register(user.UserID, conversation.ID)
	return nil
}

// recordPreferences parses a comma-separated product list and persists one
// preference per recognized ingredient. Unknown names are reported per item
// without aborting the rest; each accepted item is durable immediately.
func (c *ConversationUsecase) recordPreferences(
	ctx context.Context, user model.User, conversation model.Conversation, text string, preferable bool,
) error {
	for _, token := range strings.Split(text, ",") {
		name := model.NormalizeIngredientName(token)
		if name == "" {
			continue
		}
		ingredient, err := c.Catalog.GetIngredientByName(ctx, name)
		if err != nil {
			if errors.Is(err, model.ErrIngredientNotFound) {
				notice := model.Prompt{Text: msgProductNotFound.Format(c.lang, name)}
				if err = c.Gateway.Send(ctx, user.TelegramID, notice); err != nil {
					return fmt.Errorf("failed to send not-found notice: %w", err)
				}
				continue
			}
			return fmt.Errorf("failed to look up ingredient %q: %w", name, err)
		}
		if _, err = c.Preferences.AddPreference(ctx, conversation.ID, ingredient.ID, preferable); err != nil {
			return fmt.Errorf("failed to add preference: %w", err)
		}
	}
	if err := c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: msgProductsSaved.Text(c.lang)}); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	if err := c.setState(ctx, &conversation, model.StateAskPreferences); err != nil {
		return err
	}
	return c.advance(ctx, user, conversation)
}

// giveRecipe reports the selected recipe and returns the follow-up state: end
// on a match, ask_preferences when nothing matched so the user can edit the
// constraints instead of hitting a dead end.
func (c *ConversationUsecase) giveRecipe(
	ctx context.Context, user model.User, conversation model.Conversation,
) (model.ConversationState, error) {
	preferences, err := c.Preferences.ListConversationPreferences(ctx, conversation.ID)
	if err != nil {
		return "", fmt.Errorf("failed to list preferences: %w", err)
	}
	recipes, err := c.Catalog.ListRecipes(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list recipes: %w", err)
	}
	recipe, err := c.Recipes.Pick(recipes, preferences)
	if err != nil {
		if errors.Is(err, model.ErrNoRecipeMatch) {
			if err = c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: msgNoRecipeFound.Text(c.lang)}); err != nil {
				return "", fmt.Errorf("failed to send no-match notice: %w", err)
			}
			return model.StateAskPreferences, nil
		}
		return "", fmt.Errorf("failed to pick recipe: %w", err)
	}
	if err = c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: msgRecipeFound.Text(c.lang)}); err != nil {
		return "", fmt.Errorf("failed to send recipe announcement: %w", err)
	}
	card := msgRecipeCard.Format(c.lang, recipe.Title, recipe.Description, recipe.URL)
	if err = c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: card}); err != nil {
		return "", fmt.Errorf("failed to send recipe: %w", err)
	}
	return model.StateEnd, nil
}

// fallback handles text outside any registered continuation: a generic
// not-understood reply, then either an offer to resume the unfinished
// conversation or a hint how to start a new request.
func (c *ConversationUsecase) fallback(ctx context.Context, user model.User) error {
	if err := c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: msgNotUnderstood.Text(c.lang)}); err != nil {
		return fmt.Errorf("failed to send fallback reply: %w", err)
	}
	unfinished, err := c.Conversations.GetActiveConversation(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNoActiveConversation) {
			return c.sendStartHint(ctx, user)
		}
		return fmt.Errorf("failed to get active conversation: %w", err)
	}
	choice, err := c.Conversations.CreateConversation(ctx, user.UserID, model.StateContinueChoice, unfinished.ID)
	if err != nil {
		return fmt.Errorf("failed to create continue-choice conversation: %w", err)
	}
	prompt := model.Prompt{
		Text:    msgAskContinue.Text(c.lang),
		Options: []string{optYes.Text(c.lang), optNo.Text(c.lang)},
	}
	if err = c.Gateway.Send(ctx, user.TelegramID, prompt); err != nil {
		return fmt.Errorf("failed to send continue prompt: %w", err)
	}
	c.continuations.register(user.UserID, choice.ID)
	return nil
}

// continueChoice always ends the choice conversation itself; an affirmative
// answer re-dispatches the referenced conversation in its stored state.
func (c *ConversationUsecase) continueChoice(
	ctx context.Context, user model.User, conversation model.Conversation, text string,
) error {
	if err := c.setState(ctx, &conversation, model.StateEnd); err != nil {
		return err
	}
	if strings.TrimSpace(text) != optYes.Text(c.lang) {
		return c.sendStartHint(ctx, user)
	}
	resumed, err := c.Conversations.GetConversation(ctx, conversation.Resumes)
	if err != nil {
		return fmt.Errorf("failed to get resumed conversation %s: %w", conversation.Resumes, err)
	}
	return c.resume(ctx, user, resumed)
}

// resume re-enters a conversation exactly where it stopped. Waiting states
// get their prompt re-sent so the user knows what input is expected.
func (c *ConversationUsecase) resume(ctx context.Context, user model.User, conversation model.Conversation) error {
	if conversation.State.Terminal() {
		return c.sendStartHint(ctx, user)
	}
	if !conversation.State.AwaitsInput() {
		return c.advance(ctx, user, conversation)
	}
	if prompt, ok := c.statePrompt(conversation.State); ok {
		if err := c.Gateway.Send(ctx, user.TelegramID, prompt); err != nil {
			return fmt.Errorf("failed to re-send state prompt: %w", err)
		}
	}
	c.continuations.register(user.UserID, conversation.ID)
	return nil
}

func (c *ConversationUsecase) statePrompt(state model.ConversationState) (model.Prompt, bool) {
	switch state {
	case model.StateRestrictionsChoice:
		return restrictionsMenu(c.lang), true
	case model.StateExcludeProducts:
		return model.Prompt{Text: msgAskExcludeList.Text(c.lang)}, true
	case model.StateIncludeProducts:
		return model.Prompt{Text: msgAskIncludeList.Text(c.lang)}, true
	case model.StateContinueChoice:
		return model.Prompt{
			Text:    msgAskContinue.Text(c.lang),
			Options: []string{optYes.Text(c.lang), optNo.Text(c.lang)},
		}, true
	}
	return model.Prompt{}, false
}

func (c *ConversationUsecase) sendStartHint(ctx context.Context, user model.User) error {
	if err := c.Gateway.Send(ctx, user.TelegramID, model.Prompt{Text: msgStartHint.Text(c.lang)}); err != nil {
		return fmt.Errorf("failed to send start hint: %w", err)
	}
	return nil
}

func (c *ConversationUsecase) setState(
	ctx context.Context, conversation *model.Conversation, state model.ConversationState,
) error {
	if err := c.Conversations.UpdateConversationState(ctx, conversation.ID, state); err != nil {
		return fmt.Errorf("failed to update conversation %s to %s: %w", conversation.ID, state, err)
	}
	conversation.State = state
	return nil
}

func restrictionsMenu(lang local.Language) model.Prompt {
	return model.Prompt{
		Text: msgAskRestrictions.Text(lang),
		Options: []string{
			optExcludeProducts.Text(lang),
			optIncludeProducts.Text(lang),
			optGiveRecipe.Text(lang),
		},
	}
}
