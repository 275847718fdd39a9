package in_memory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/model"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserDoesNotExists = errors.New("user doesn't exists")
)

type UserStorage struct {
	users            map[uuid.UUID]*model.User
	telegramUsersIDs map[int64]uuid.UUID
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		users:            make(map[uuid.UUID]*model.User),
		telegramUsersIDs: make(map[int64]uuid.UUID),
	}
}

func (u *UserStorage) CreateNewTelegramUser(_ context.Context, userTelegramID int64) (uuid.UUID, error) {
	if _, ok := u.telegramUsersIDs[userTelegramID]; ok {
		return uuid.Nil, ErrUserAlreadyExists
	}
	userID := uuid.New()
	u.telegramUsersIDs[userTelegramID] = userID
	u.users[userID] = &model.User{
		TelegramID: userTelegramID,
		UserID:     userID,
	}
	return userID, nil
}

func (u *UserStorage) GetUserInfo(_ context.Context, userID uuid.UUID) (model.User, error) {
	user, ok := u.users[userID]
	if !ok {
		return model.User{}, ErrUserDoesNotExists
	}
	return *user, nil
}

func (u *UserStorage) GetUserIDForTelegramUser(_ context.Context, userTelegramID int64) (uuid.UUID, error) {
	userID, ok := u.telegramUsersIDs[userTelegramID]
	if !ok {
		return uuid.Nil, model.ErrTelegramUserDoesNotExists
	}
	return userID, nil
}
