package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingApproved  BookingStatus = "Approved"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

var bookingStatuses = []BookingStatus{BookingPending, BookingApproved, BookingCancelled, BookingCompleted}

// ActiveBookingStatuses are the statuses whose items block an equipment item.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingApproved}

// ParseBookingStatus accepts any letter case, e.g. "pending" or "APPROVED".
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range bookingStatuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingApproved
}

type Booking struct {
	ID           int64         `json:"id" gorm:"primaryKey"`
	UserID       int64         `json:"user_id" gorm:"not null;index"`
	Name         string        `json:"name"`
	Comment      string        `json:"comment" gorm:"type:text"`
	AdminComment *string       `json:"admin_comment,omitempty" gorm:"type:text"`
	StartDate    time.Time     `json:"start_date" gorm:"not null;index"`
	EndDate      time.Time     `json:"end_date" gorm:"not null;index"`
	Status       BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Items []BookingItem `json:"items" gorm:"foreignKey:BookingID"`
}

// BookingItem ties one physical item to a booking. It copies the booking
// interval at creation time.
type BookingItem struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	BookingID       int64     `json:"booking_id" gorm:"not null;index"`
	EquipmentItemID int64     `json:"equipment_item_id" gorm:"not null;index:idx_booking_items_item_interval,priority:1"`
	StartDate       time.Time `json:"start_date" gorm:"not null;index:idx_booking_items_item_interval,priority:2"`
	EndDate         time.Time `json:"end_date" gorm:"not null;index:idx_booking_items_item_interval,priority:3"`
	IsReturned      bool      `json:"is_returned" gorm:"not null;default:false"`
}
