package booking

import (
	"context"

	"gutvbooker/internal/repository"
)

type gormBookings struct {
	*repository.BookingRepository
}

// NewGormRepository adapts the gorm booking repository to BookingRepository.
func NewGormRepository(repo *repository.BookingRepository) BookingRepository {
	return gormBookings{BookingRepository: repo}
}

func (g gormBookings) WithinTransaction(ctx context.Context, fn func(tx BookingStore) error) error {
	return g.BookingRepository.WithinTransaction(ctx, func(tx *repository.BookingRepository) error {
		return fn(tx)
	})
}
