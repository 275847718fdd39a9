package usecase

import (
	"context"
	"fmt"
	"log"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/iamvkosarev/recipe-telegram-bot/config"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
	"github.com/iamvkosarev/recipe-telegram-bot/pkg/local"
	"github.com/sourcegraph/conc"
)

const (
	CommandStart  = "start"
	CommandHelp   = "help"
	CommandRecipe = "recipe"
)

type TelegramUsecaseDeps struct {
	User         *UserUsecase
	Conversation *ConversationUsecase
	Bot          *api.BotAPI
}

type TelegramUsecase struct {
	TelegramUsecaseDeps
	cfg  config.Telegram
	lang local.Language
}

func NewTelegramUsecase(cfg config.Telegram, deps TelegramUsecaseDeps) (*TelegramUsecase, error) {
	_, err := deps.Bot.Request(
		api.NewSetMyCommands(
			[]api.BotCommand{
				{
					Command:     CommandStart,
					Description: "Start the bot",
				},
				{
					Command:     CommandHelp,
					Description: "Show available commands",
				},
				{
					Command:     CommandRecipe,
					Description: "Request a recipe",
				},
			}...,
		),
	)
	if err != nil {
		return nil, err
	}
	return &TelegramUsecase{
		TelegramUsecaseDeps: deps,
		cfg:                 cfg,
		lang:                local.ParseLanguage(cfg.Language),
	}, nil
}

// Run consumes updates until ctx is done. Messages are handled strictly one
// at a time, so a conversation never sees two inbound messages concurrently.
func (t *TelegramUsecase) Run(ctx context.Context) error {
	u := api.NewUpdate(0)
	u.Timeout = 60

	updates := t.Bot.GetUpdatesChan(u)

	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			for {
				select {
				case <-ctx.Done():
					t.Bot.StopReceivingUpdates()
					return
				case update, ok := <-updates:
					if !ok {
						return
					}
					if update.Message == nil {
						continue
					}
					if err := t.handleMessage(ctx, update.Message); err != nil {
						log.Printf("error handling message: %v", err)
					}
				}
			}
		},
	)
	wg.Wait()
	return nil
}

func (t *TelegramUsecase) handleMessage(ctx context.Context, msg *api.Message) error {
	chatID := msg.Chat.ID

	user, err := t.User.GetUserInfoForTelegramUser(ctx, chatID)
	if err != nil {
		t.sendMessageAndHandleErr(chatID, msgServerError.Text(t.lang))
		return fmt.Errorf("failed to get user info for telegram user: %w", err)
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case CommandStart:
			t.sendMessageAndHandleErr(chatID, msgWelcome.Text(t.lang))
			return nil
		case CommandHelp:
			t.sendMessageAndHandleErr(chatID, msgHelp.Text(t.lang))
			return nil
		case CommandRecipe:
			if err = t.Conversation.StartRequest(ctx, user); err != nil {
				t.sendMessageAndHandleErr(chatID, msgServerError.Text(t.lang))
				return fmt.Errorf("failed to start recipe request: %w", err)
			}
			return nil
		}
		// unknown commands take the same path as stray text
	}

	if err = t.Conversation.HandleMessage(ctx, user, msg.Text); err != nil {
		t.sendMessageAndHandleErr(chatID, msgServerError.Text(t.lang))
		return fmt.Errorf("failed to handle message: %w", err)
	}
	return nil
}

func (t *TelegramUsecase) sendMessageAndHandleErr(chatID int64, message string) {
	if _, err := t.Bot.Send(api.NewMessage(chatID, message)); err != nil {
		log.Printf("failed to send new message to bot: %v\n", err)
	}
}

// TelegramGateway renders engine prompts as telegram messages; option sets
// become single-use reply keyboards that collapse after one selection.
type TelegramGateway struct {
	bot *api.BotAPI
}

func NewTelegramGateway(bot *api.BotAPI) *TelegramGateway {
	return &TelegramGateway{
		bot: bot,
	}
}

func (g *TelegramGateway) Send(_ context.Context, chatID int64, prompt model.Prompt) error {
	msg := api.NewMessage(chatID, prompt.Text)
	if len(prompt.Options) > 0 {
		buttons := make([]api.KeyboardButton, 0, len(prompt.Options))
		for _, option := range prompt.Options {
			buttons = append(buttons, api.NewKeyboardButton(option))
		}
		msg.ReplyMarkup = api.NewOneTimeReplyKeyboard(buttons)
	}
	if _, err := g.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to bot: %w", err)
	}
	return nil
}
