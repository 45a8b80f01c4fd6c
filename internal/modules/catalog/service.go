package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"gutvbooker/internal/domain"
)

var (
	ErrNotFound        = errors.New("equipment type not found")
	ErrInvalidCategory = errors.New("invalid category")
)

type Repository interface {
	ListTypes(ctx context.Context, category *domain.Category) ([]domain.EquipmentType, error)
	GetTypeByID(ctx context.Context, id int64) (*domain.EquipmentType, error)
	ListItemsByType(ctx context.Context, typeID int64) ([]domain.EquipmentItem, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListTypes returns every equipment type; a non-empty category narrows it.
func (s *Service) ListTypes(ctx context.Context, category string) ([]domain.EquipmentType, error) {
	var filter *domain.Category
	if strings.TrimSpace(category) != "" {
		c, err := domain.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
		}
		filter = &c
	}
	return s.repo.ListTypes(ctx, filter)
}

func (s *Service) GetType(ctx context.Context, id int64) (*domain.EquipmentType, error) {
	t, err := s.repo.GetTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) ListItemsByType(ctx context.Context, typeID int64) ([]domain.EquipmentItem, error) {
	if _, err := s.GetType(ctx, typeID); err != nil {
		return nil, err
	}
	return s.repo.ListItemsByType(ctx, typeID)
}
