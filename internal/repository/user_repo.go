package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gutvbooker/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// GetByID returns gorm.ErrRecordNotFound when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByLogin matches the login case-insensitively.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(login) = LOWER(?)", login).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) SetOsnova(ctx context.Context, userID int64) error {
	return r.SetFlag(ctx, userID, "osnova", true)
}

// PromoteEligibleOsnova grants Osnova to every user who joined at least a
// year before now and does not have it yet. Returns the number promoted.
func (r *UserRepository) PromoteEligibleOsnova(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.UTC().AddDate(-1, 0, 0)
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("osnova = ?", false).
		Where("join_date > ? AND join_date <= ?", time.Time{}, cutoff).
		Update("osnova", true)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetFlag updates one of the boolean account flags (banned, ronin, osnova).
func (r *UserRepository) SetFlag(ctx context.Context, userID int64, column string, value bool) error {
	switch column {
	case "banned", "ronin", "osnova":
	default:
		return fmt.Errorf("unknown user flag %q", column)
	}

	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchByName matches users whose name contains part, ignoring case.
func (r *UserRepository) SearchByName(ctx context.Context, part string) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(part)+"%").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole switches a user between the user and admin roles.
func (r *UserRepository) SetRole(ctx context.Context, userID int64, role domain.UserRole) error {
	switch role {
	case domain.RoleUser, domain.RoleAdmin:
	default:
		return fmt.Errorf("unknown user role %q", role)
	}

	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user together with their bookings and booking items.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := tx.Model(&domain.Booking{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("booking_id IN (?)", bookings).Delete(&domain.BookingItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
