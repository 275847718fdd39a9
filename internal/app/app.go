package app

import (
	"context"
	"fmt"
	"log"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/iamvkosarev/recipe-telegram-bot/config"
	key_value "github.com/iamvkosarev/recipe-telegram-bot/internal/storage/key-value"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/storage/sqlite"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/usecase"
	"github.com/iamvkosarev/recipe-telegram-bot/pkg/local"
	"github.com/redis/go-redis/v9"
)

func Run(ctx context.Context, cfg *config.Config) error {
	bot, err := api.NewBotAPI(cfg.Telegram.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("failed to create new bot: %w", err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	rdb := redis.NewClient(
		&redis.Options{
			Addr: cfg.Redis.Endpoint,
		},
	)

	catalogStorage, err := sqlite.NewCatalogStorage(cfg.Catalog.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open catalog storage: %w", err)
	}
	defer catalogStorage.Close()

	userStorage := key_value.NewUserStorage(rdb)
	conversationStorage := key_value.NewConversationStorage(rdb)
	preferenceStorage := key_value.NewPreferenceStorage(rdb)

	userUsecase := usecase.NewUserUsecase(
		usecase.UserUsecaseDeps{
			UserStorage: userStorage,
		},
	)

	conversationUsecase := usecase.NewConversationUsecase(
		usecase.ConversationUsecaseDeps{
			Conversations: conversationStorage,
			Preferences:   preferenceStorage,
			Catalog:       catalogStorage,
			Recipes:       usecase.NewRecipeUsecase(),
			Gateway:       usecase.NewTelegramGateway(bot),
		},
		local.ParseLanguage(cfg.Telegram.Language),
	)

	telegramUsecase, err := usecase.NewTelegramUsecase(
		cfg.Telegram, usecase.TelegramUsecaseDeps{
			User:         userUsecase,
			Conversation: conversationUsecase,
			Bot:          bot,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create telegram usecase: %w", err)
	}

	return telegramUsecase.Run(ctx)
}
