package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
)

type UserStorage interface {
	GetUserIDForTelegramUser(ctx context.Context, userTelegramID int64) (uuid.UUID, error)
	CreateNewTelegramUser(ctx context.Context, userTelegramID int64) (uuid.UUID, error)
	GetUserInfo(ctx context.Context, userID uuid.UUID) (model.User, error)
}

type UserUsecaseDeps struct {
	UserStorage UserStorage
}

type UserUsecase struct {
	UserUsecaseDeps
}

func NewUserUsecase(deps UserUsecaseDeps) *UserUsecase {
	return &UserUsecase{
		UserUsecaseDeps: deps,
	}
}

// GetUserInfoForTelegramUser returns the stored user, creating the record on
// first interaction.
func (u *UserUsecase) GetUserInfoForTelegramUser(ctx context.Context, userTelegramID int64) (model.User, error) {
	userID, err := u.UserStorage.GetUserIDForTelegramUser(ctx, userTelegramID)
	if err != nil {
		if !errors.Is(err, model.ErrTelegramUserDoesNotExists) {
			return model.User{}, fmt.Errorf("failed to get user id: %w", err)
		}
		userID, err = u.UserStorage.CreateNewTelegramUser(ctx, userTelegramID)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to create telegram user: %w", err)
		}
	}
	return u.UserStorage.GetUserInfo(ctx, userID)
}
