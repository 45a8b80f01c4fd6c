package repository

import (
	"context"

	"gorm.io/gorm"

	"gutvbooker/internal/domain"
)

// EquipmentRepository is the read side of the equipment catalog.
type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// ListTypes returns all types, optionally restricted to one category.
func (r *EquipmentRepository) ListTypes(ctx context.Context, category *domain.Category) ([]domain.EquipmentType, error) {
	q := r.db.WithContext(ctx).Order("name")
	if category != nil {
		q = q.Where("category = ?", string(*category))
	}

	types := []domain.EquipmentType{}
	if err := q.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *EquipmentRepository) GetTypeByID(ctx context.Context, id int64) (*domain.EquipmentType, error) {
	var t domain.EquipmentType
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTypesByIDs returns the known types keyed by id; unknown ids are absent.
func (r *EquipmentRepository) GetTypesByIDs(ctx context.Context, ids []int64) (map[int64]domain.EquipmentType, error) {
	out := make(map[int64]domain.EquipmentType, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var types []domain.EquipmentType
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&types).Error; err != nil {
		return nil, err
	}
	for _, t := range types {
		out[t.ID] = t
	}
	return out, nil
}

func (r *EquipmentRepository) ListItemsByType(ctx context.Context, typeID int64) ([]domain.EquipmentItem, error) {
	items := []domain.EquipmentItem{}
	err := r.db.WithContext(ctx).
		Where("equipment_type_id = ?", typeID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *EquipmentRepository) GetItemsByIDs(ctx context.Context, ids []int64) (map[int64]domain.EquipmentItem, error) {
	out := make(map[int64]domain.EquipmentItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []domain.EquipmentItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

// GetItemByInventoryNumber matches case-insensitively.
func (r *EquipmentRepository) GetItemByInventoryNumber(ctx context.Context, inv string) (*domain.EquipmentItem, error) {
	var it domain.EquipmentItem
	err := r.db.WithContext(ctx).
		Where("LOWER(inventory_number) = LOWER(?)", inv).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}
