package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
	in_memory "github.com/iamvkosarev/recipe-telegram-bot/internal/storage/in-memory"
	"github.com/iamvkosarev/recipe-telegram-bot/pkg/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testIngredients = []model.Ingredient{
		{ID: 1, Name: "carrot"},
		{ID: 2, Name: "onion"},
		{ID: 3, Name: "salt"},
		{ID: 4, Name: "beef"},
	}
	testCatalogRecipes = []model.Recipe{
		{ID: 1, Title: "Борщ", Description: "Свекольный суп", URL: "https://example.com/borsch", Ingredients: []int64{1, 2, 4}},
		{ID: 2, Title: "Плов", Description: "Рис с мясом", URL: "https://example.com/plov", Ingredients: []int64{2, 4}},
		{ID: 3, Title: "Салат", Description: "Овощной салат", URL: "https://example.com/salad", Ingredients: []int64{1, 3}},
	}
)

type recordingGateway struct {
	sent []model.Prompt
}

func (g *recordingGateway) Send(_ context.Context, _ int64, prompt model.Prompt) error {
	g.sent = append(g.sent, prompt)
	return nil
}

func (g *recordingGateway) texts() []string {
	texts := make([]string, 0, len(g.sent))
	for _, prompt := range g.sent {
		texts = append(texts, prompt.Text)
	}
	return texts
}

func (g *recordingGateway) last() model.Prompt {
	if len(g.sent) == 0 {
		return model.Prompt{}
	}
	return g.sent[len(g.sent)-1]
}

func (g *recordingGateway) countText(text string) int {
	count := 0
	for _, prompt := range g.sent {
		if prompt.Text == text {
			count++
		}
	}
	return count
}

type engineFixture struct {
	engine        *ConversationUsecase
	gateway       *recordingGateway
	conversations *in_memory.ConversationStorage
	preferences   *in_memory.PreferenceStorage
	user          model.User
}

func newEngineFixture(recipes []model.Recipe) *engineFixture {
	gateway := &recordingGateway{}
	conversations := in_memory.NewConversationStorage()
	preferences := in_memory.NewPreferenceStorage()
	engine := NewConversationUsecase(
		ConversationUsecaseDeps{
			Conversations: conversations,
			Preferences:   preferences,
			Catalog:       in_memory.NewCatalogStorage(testIngredients, recipes),
			Recipes:       NewRecipeUsecase(),
			Gateway:       gateway,
		},
		local.Rus,
	)
	return &engineFixture{
		engine:        engine,
		gateway:       gateway,
		conversations: conversations,
		preferences:   preferences,
		user:          model.User{UserID: uuid.New(), TelegramID: 42},
	}
}

// restart returns an engine over the same stores but with a fresh (empty)
// continuation registry, as after a process restart.
func (f *engineFixture) restart() *ConversationUsecase {
	return NewConversationUsecase(
		ConversationUsecaseDeps{
			Conversations: f.conversations,
			Preferences:   f.preferences,
			Catalog:       in_memory.NewCatalogStorage(testIngredients, testCatalogRecipes),
			Recipes:       NewRecipeUsecase(),
			Gateway:       f.gateway,
		},
		local.Rus,
	)
}

func TestRecipeRequestHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)

	require.NoError(t, f.engine.StartRequest(ctx, f.user))
	menu := f.gateway.last()
	assert.Equal(t, "Хотите добавить ограничения для рецепта?", menu.Text)
	assert.Equal(t, []string{"Исключить продукты", "Обязательные продукты", "Получить рецепт"}, menu.Options)

	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "Получить рецепт"))
	texts := f.gateway.texts()
	assert.Contains(t, texts, "Мы нашли рецепт для вас!")
	card := f.gateway.last().Text
	assert.Contains(t, card, "Название: ")
	assert.Contains(t, card, "Ссылка: https://example.com/")

	_, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	assert.ErrorIs(t, err, model.ErrNoActiveConversation)
}

func TestSingleActiveConversation(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.engine.StartRequest(ctx, f.user))
	}

	conversations, err := f.conversations.ListUserConversations(ctx, f.user.UserID)
	require.NoError(t, err)
	require.Len(t, conversations, 3)

	active := 0
	for _, conversation := range conversations {
		if !conversation.State.Terminal() {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestPartialFailureTolerance(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)

	require.NoError(t, f.engine.StartRequest(ctx, f.user))
	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "Исключить продукты"))
	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "carrot, unicorntears, onion"))

	active, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	require.NoError(t, err)

	preferences, err := f.preferences.ListConversationPreferences(ctx, active.ID)
	require.NoError(t, err)
	require.Len(t, preferences, 2)
	for _, preference := range preferences {
		assert.False(t, preference.Preferable)
	}

	assert.Equal(t, 1, f.gateway.countText("Продукт с названием unicorntears не был найден."))
	assert.Equal(t, 1, f.gateway.countText("Продукты были успешно сохранены."))
	// the conversation went back through ask_preferences: the menu is shown again
	assert.Equal(t, 2, f.gateway.countText("Хотите добавить ограничения для рецепта?"))
	assert.Equal(t, model.StateRestrictionsChoice, active.State)
}

func TestNoMatchReturnsToMenu(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)

	require.NoError(t, f.engine.StartRequest(ctx, f.user))
	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "Исключить продукты"))
	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "carrot, onion, salt, beef"))
	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "Получить рецепт"))

	assert.Equal(t, 1, f.gateway.countText("Мы не смогли найти рецепт для вас. Попробуйте еще раз с другими ограничениями"))
	assert.Equal(t, 0, f.gateway.countText("Мы нашли рецепт для вас!"))

	// no dead end: the conversation is back at the options menu
	active, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.StateRestrictionsChoice, active.State)
	assert.Equal(t, 3, f.gateway.countText("Хотите добавить ограничения для рецепта?"))
}

func TestUnrecognizedChoiceKeepsWaiting(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)

	require.NoError(t, f.engine.StartRequest(ctx, f.user))
	sentBefore := len(f.gateway.sent)

	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "абракадабра"))
	assert.Equal(t, sentBefore, len(f.gateway.sent))

	active, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.StateRestrictionsChoice, active.State)

	// the continuation survived the unrecognized input
	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "Получить рецепт"))
	assert.Equal(t, 1, f.gateway.countText("Мы нашли рецепт для вас!"))
}

func TestResumptionRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)

	require.NoError(t, f.engine.StartRequest(ctx, f.user))
	require.NoError(t, f.engine.HandleMessage(ctx, f.user, "Обязательные продукты"))

	original, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	require.NoError(t, err)
	require.Equal(t, model.StateIncludeProducts, original.State)

	restarted := f.restart()
	require.NoError(t, restarted.HandleMessage(ctx, f.user, "привет"))
	assert.Equal(t, 1, f.gateway.countText("Извините, я вас не понимаю"))
	offer := f.gateway.last()
	assert.Equal(t, "Кажется у вас есть незаконченный запрос рецепта. Хотите продолжить?", offer.Text)
	assert.Equal(t, []string{"Да", "Нет"}, offer.Options)

	require.NoError(t, restarted.HandleMessage(ctx, f.user, "Да"))
	active, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, active.ID)
	assert.Equal(t, model.StateIncludeProducts, active.State)

	require.NoError(t, restarted.HandleMessage(ctx, f.user, "beef"))
	preferences, err := f.preferences.ListConversationPreferences(ctx, original.ID)
	require.NoError(t, err)
	require.Len(t, preferences, 1)
	assert.True(t, preferences[0].Preferable)
	assert.Equal(t, int64(4), preferences[0].IngredientID)

	require.NoError(t, restarted.HandleMessage(ctx, f.user, "Получить рецепт"))
	card := f.gateway.last().Text
	// both recipes with beef qualify, the salad does not
	assert.NotContains(t, card, "Салат")
}

func TestContinueChoiceDeclined(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)

	require.NoError(t, f.engine.StartRequest(ctx, f.user))
	original, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	require.NoError(t, err)

	restarted := f.restart()
	require.NoError(t, restarted.HandleMessage(ctx, f.user, "привет"))
	require.NoError(t, restarted.HandleMessage(ctx, f.user, "Нет"))

	assert.Equal(t, 1, f.gateway.countText("Если вы хотите получить новый рецепт, напишите /recipe"))

	// the choice conversation ended; the original stays until /recipe closes it
	active, err := f.conversations.GetActiveConversation(ctx, f.user.UserID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, active.ID)
}

func TestFallbackScopedToUser(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(testCatalogRecipes)
	other := model.User{UserID: uuid.New(), TelegramID: 43}

	require.NoError(t, f.engine.StartRequest(ctx, f.user))

	// the other user's stray text must not see this user's open conversation
	require.NoError(t, f.engine.HandleMessage(ctx, other, "привет"))
	assert.Equal(t, 1, f.gateway.countText("Если вы хотите получить новый рецепт, напишите /recipe"))
	assert.Equal(t, 0, f.gateway.countText("Кажется у вас есть незаконченный запрос рецепта. Хотите продолжить?"))
}
