package booking

import (
	"time"

	"gutvbooker/internal/domain"
)

type CreateBookingRequest struct {
	Name             string    `json:"name" binding:"max=200"`
	Start            time.Time `json:"start" binding:"required"`
	End              time.Time `json:"end" binding:"required"`
	EquipmentTypeIDs []int64   `json:"equipmentTypeIds" binding:"required,min=1,dive,gt=0"`
	Comment          string    `json:"comment" binding:"max=2000"`
}

type BookingItemResponse struct {
	ID              int64     `json:"id"`
	EquipmentItemID int64     `json:"equipmentItemId"`
	InventoryNumber string    `json:"inventoryNumber"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsReturned      bool      `json:"isReturned"`
}

type BookingResponse struct {
	ID           int64                 `json:"id"`
	UserID       int64                 `json:"userId"`
	Name         string                `json:"name"`
	CreationDate time.Time             `json:"creationDate"`
	StartDate    time.Time             `json:"startDate"`
	EndDate      time.Time             `json:"endDate"`
	Status       string                `json:"status"`
	Items        []BookingItemResponse `json:"items"`
	Warnings     []string              `json:"warnings"`
	Comment      string                `json:"comment"`
}

// Event payload broadcast for lifecycle changes.
type BookingEvent struct {
	BookingID int64  `json:"bookingId"`
	UserID    int64  `json:"userId"`
	Status    string `json:"status"`
	ActorID   int64  `json:"actorId,omitempty"`
}

const (
	EventCreated   = "booking.created"
	EventApproved  = "booking.approved"
	EventCompleted = "booking.completed"
	EventCancelled = "booking.cancelled"
)

// toResponse builds the DTO. invNumbers maps equipment item id to its
// inventory number; keep, when non-zero, limits items to that equipment item.
func toResponse(b *domain.Booking, invNumbers map[int64]domain.EquipmentItem, keep int64, warnings []string) BookingResponse {
	items := make([]BookingItemResponse, 0, len(b.Items))
	for _, bi := range b.Items {
		if keep != 0 && bi.EquipmentItemID != keep {
			continue
		}
		items = append(items, BookingItemResponse{
			ID:              bi.ID,
			EquipmentItemID: bi.EquipmentItemID,
			InventoryNumber: invNumbers[bi.EquipmentItemID].InventoryNumber,
			StartDate:       bi.StartDate,
			EndDate:         bi.EndDate,
			IsReturned:      bi.IsReturned,
		})
	}

	if warnings == nil {
		warnings = []string{}
	}

	return BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		CreationDate: b.CreatedAt,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		Status:       string(b.Status),
		Items:        items,
		Warnings:     warnings,
		Comment:      b.Comment,
	}
}
