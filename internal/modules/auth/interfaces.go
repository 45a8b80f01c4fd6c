package auth

import (
	"context"

	"gutvbooker/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	SetOsnova(ctx context.Context, userID int64) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
