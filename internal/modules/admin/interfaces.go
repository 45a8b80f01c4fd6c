package admin

import (
	"context"
	"time"

	"gutvbooker/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	SearchByName(ctx context.Context, part string) ([]domain.User, error)
	SetFlag(ctx context.Context, userID int64, column string, value bool) error
	SetRole(ctx context.Context, userID int64, role domain.UserRole) error
	Delete(ctx context.Context, userID int64) error
	PromoteEligibleOsnova(ctx context.Context, now time.Time) (int64, error)
}
