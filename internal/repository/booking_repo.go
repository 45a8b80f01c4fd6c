package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gutvbooker/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// WithinTransaction runs fn against a repository bound to one transaction.
// Returning an error from fn rolls everything back.
func (r *BookingRepository) WithinTransaction(ctx context.Context, fn func(tx *BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingRepository{db: tx})
	})
}

// LockCandidateItems returns the available items of the given types ordered
// by id and holds a row lock on each of them until the transaction ends.
// Locks are taken in id order so concurrent callers cannot deadlock on them.
func (r *BookingRepository) LockCandidateItems(ctx context.Context, typeIDs []int64) ([]domain.EquipmentItem, error) {
	items := []domain.EquipmentItem{}
	if len(typeIDs) == 0 {
		return items, nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("equipment_type_id IN ?", typeIDs).
		Where("available = ?", true).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// BusyItemIDs returns which of itemIDs already have a Pending or Approved
// booking overlapping [start, end).
func (r *BookingRepository) BusyItemIDs(ctx context.Context, itemIDs []int64, start, end time.Time) (map[int64]struct{}, error) {
	busy := make(map[int64]struct{})
	if len(itemIDs) == 0 {
		return busy, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Table("booking_items AS bi").
		Joins("JOIN bookings b ON b.id = bi.booking_id").
		Where("bi.equipment_item_id IN ?", itemIDs).
		Where("b.status IN ?", activeStatuses()).
		Where("bi.start_date < ? AND bi.end_date > ?", end, start).
		Distinct().
		Pluck("bi.equipment_item_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		busy[id] = struct{}{}
	}
	return busy, nil
}

// Create inserts the booking together with its items.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.withItems(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	return r.list(ctx, "status = ?", string(status))
}

// ListByEquipmentItem returns every booking that has a line for itemID.
func (r *BookingRepository) ListByEquipmentItem(ctx context.Context, itemID int64) ([]domain.Booking, error) {
	sub := r.db.Model(&domain.BookingItem{}).Select("booking_id").Where("equipment_item_id = ?", itemID)
	return r.list(ctx, "id IN (?)", sub)
}

// UpdateStatus moves a booking from one status to another. It reports false
// when no booking with that id is currently in the from status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Delete removes a Pending or Approved booking and all of its items
// atomically. It returns gorm.ErrRecordNotFound when no active booking
// with that id exists; items are kept in that case.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&domain.BookingItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND status IN ?", id, activeStatuses()).Delete(&domain.Booking{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// MarkItemReturned flags one line of a booking as returned.
func (r *BookingRepository) MarkItemReturned(ctx context.Context, bookingID, bookingItemID int64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.BookingItem{}).
		Where("id = ? AND booking_id = ?", bookingItemID, bookingID).
		Update("is_returned", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	err := r.withItems(ctx).
		Where(query, args...).
		Order("start_date DESC, id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveBookingStatuses))
	for _, s := range domain.ActiveBookingStatuses {
		out = append(out, string(s))
	}
	return out
}
