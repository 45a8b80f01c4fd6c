package domain

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryCamera  Category = "Camera"
	CategoryLens    Category = "Lens"
	CategoryCard    Category = "Card"
	CategoryBattery Category = "Battery"
	CategoryCharger Category = "Charger"
	CategorySound   Category = "Sound"
	CategoryStand   Category = "Stand"
	CategoryLight   Category = "Light"
	CategoryOther   Category = "Other"
)

var categories = []Category{
	CategoryCamera, CategoryLens, CategoryCard, CategoryBattery, CategoryCharger,
	CategorySound, CategoryStand, CategoryLight, CategoryOther,
}

func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown equipment category %q", s)
}

// AccessTier gates who may book a type. Osnova is advisory, Ronin is enforced.
type AccessTier string

const (
	TierStandard AccessTier = "Standard"
	TierOsnova   AccessTier = "Osnova"
	TierRonin    AccessTier = "Ronin"
)

type EquipmentType struct {
	ID          int64          `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	Category    Category       `json:"category" gorm:"type:varchar(16);not null;index"`
	AccessTier  AccessTier     `json:"access_tier" gorm:"type:varchar(16);not null;default:Standard"`
	Attributes  map[string]any `json:"attributes" gorm:"serializer:json;type:text"`

	Items []EquipmentItem `json:"-" gorm:"foreignKey:EquipmentTypeID"`
}

// EquipmentItem is one inventoried unit. Available=false means the item was
// withdrawn by an admin; it is never allocated regardless of bookings.
type EquipmentItem struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	EquipmentTypeID int64  `json:"equipment_type_id" gorm:"not null;index"`
	InventoryNumber string `json:"inventory_number" gorm:"not null;uniqueIndex"`
	Available       bool   `json:"available" gorm:"not null;default:true"`
}
