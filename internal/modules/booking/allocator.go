package booking

import (
	"context"
	"fmt"

	"gutvbooker/internal/domain"
)

// AllocateItems picks one concrete item per requested type for iv. It must
// run inside the creation transaction: candidate rows stay locked until
// commit, so two concurrent callers cannot both pick the same free item.
//
// The result has one item per entry of typeIDs, in the same order. A type
// listed twice gets two distinct items. If any type cannot be served the
// whole call fails with *NoAvailableItemError.
func AllocateItems(ctx context.Context, store BookingStore, typeIDs []int64, iv Interval, exclude []int64) ([]domain.EquipmentItem, error) {
	if len(typeIDs) == 0 {
		return []domain.EquipmentItem{}, nil
	}

	candidates, err := store.LockCandidateItems(ctx, uniqueIDs(typeIDs))
	if err != nil {
		return nil, fmt.Errorf("lock candidate items: %w", err)
	}

	ids := make([]int64, 0, len(candidates))
	for _, it := range candidates {
		ids = append(ids, it.ID)
	}

	busy, err := store.BusyItemIDs(ctx, ids, iv.Start, iv.End)
	if err != nil {
		return nil, fmt.Errorf("load busy items: %w", err)
	}

	return selectItems(typeIDs, candidates, busy, exclude)
}

// selectItems is the pure part of allocation. candidates must be ordered by
// ID; the lowest free ID of each type wins.
func selectItems(typeIDs []int64, candidates []domain.EquipmentItem, busy map[int64]struct{}, exclude []int64) ([]domain.EquipmentItem, error) {
	taken := make(map[int64]struct{}, len(busy)+len(exclude)+len(typeIDs))
	for id := range busy {
		taken[id] = struct{}{}
	}
	for _, id := range exclude {
		taken[id] = struct{}{}
	}

	byType := make(map[int64][]domain.EquipmentItem)
	for _, it := range candidates {
		byType[it.EquipmentTypeID] = append(byType[it.EquipmentTypeID], it)
	}

	out := make([]domain.EquipmentItem, 0, len(typeIDs))
	for _, typeID := range typeIDs {
		picked := false
		for _, it := range byType[typeID] {
			if _, ok := taken[it.ID]; ok {
				continue
			}
			taken[it.ID] = struct{}{}
			out = append(out, it)
			picked = true
			break
		}
		if !picked {
			return nil, &NoAvailableItemError{TypeID: typeID}
		}
	}
	return out, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
