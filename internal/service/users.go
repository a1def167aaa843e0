package service

import (
	"context"

	"microblog/internal/model"
)

//go:generate mockgen -source=users.go -destination=./user_storage_mock.go -package=service microblog/internal/service UserStorage
type UserStorage interface {
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
}
