package booking

import (
	"context"
	"time"

	"gutvbooker/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type CatalogRepository interface {
	GetTypesByIDs(ctx context.Context, ids []int64) (map[int64]domain.EquipmentType, error)
	GetItemsByIDs(ctx context.Context, ids []int64) (map[int64]domain.EquipmentItem, error)
	GetItemByInventoryNumber(ctx context.Context, inv string) (*domain.EquipmentItem, error)
}

// BookingStore is the part of the booking repository used inside the
// creation transaction.
type BookingStore interface {
	LockCandidateItems(ctx context.Context, typeIDs []int64) ([]domain.EquipmentItem, error)
	BusyItemIDs(ctx context.Context, itemIDs []int64, start, end time.Time) (map[int64]struct{}, error)
	Create(ctx context.Context, b *domain.Booking) error
}

type BookingRepository interface {
	WithinTransaction(ctx context.Context, fn func(tx BookingStore) error) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	ListByEquipmentItem(ctx context.Context, itemID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
	MarkItemReturned(ctx context.Context, bookingID, bookingItemID int64) error
}

// EventPublisher receives lifecycle events. Implementations must not block.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, any) {}
