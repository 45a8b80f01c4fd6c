package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ParseUserRole accepts "user" or "admin" in any letter case.
func ParseUserRole(s string) (UserRole, error) {
	for _, r := range []UserRole{RoleUser, RoleAdmin} {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown user role %q", s)
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Login        string    `json:"login" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	TelegramID   string    `json:"telegram_id,omitempty"`
	Role         UserRole  `json:"role" gorm:"type:varchar(16);not null;default:user"`
	Banned       bool      `json:"banned" gorm:"not null;default:false"`
	Osnova       bool      `json:"osnova" gorm:"not null;default:false"`
	Ronin        bool      `json:"ronin" gorm:"not null;default:false"`
	JoinDate     time.Time `json:"join_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// HasTier reports whether u may book equipment of the given tier.
// Admins hold every tier.
func (u *User) HasTier(t AccessTier) bool {
	if u.IsAdmin() {
		return true
	}
	switch t {
	case TierOsnova:
		return u.Osnova
	case TierRonin:
		return u.Ronin
	default:
		return true
	}
}

// EligibleForOsnova is true once a year has passed since the user joined.
func (u *User) EligibleForOsnova(now time.Time) bool {
	if u.Osnova || u.JoinDate.IsZero() {
		return false
	}
	return !u.JoinDate.AddDate(1, 0, 0).After(now)
}
