package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gutvbooker/internal/database"
	"gutvbooker/internal/domain"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

var day = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func seedBooking(t *testing.T, db *gorm.DB, itemID int64, status domain.BookingStatus, from, to int) *domain.Booking {
	t.Helper()
	start := day.AddDate(0, 0, from)
	end := day.AddDate(0, 0, to)
	b := &domain.Booking{
		UserID: 1, Status: status, StartDate: start, EndDate: end,
		Items: []domain.BookingItem{{EquipmentItemID: itemID, StartDate: start, EndDate: end}},
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestBookingRepository_BusyItemIDs(t *testing.T) {
	db := openDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	seedBooking(t, db, 1, domain.BookingPending, 0, 2)
	seedBooking(t, db, 2, domain.BookingApproved, 5, 7)
	seedBooking(t, db, 3, domain.BookingCompleted, 0, 10)
	seedBooking(t, db, 4, domain.BookingCancelled, 0, 10)

	busy, err := repo.BusyItemIDs(ctx, []int64{1, 2, 3, 4}, day.AddDate(0, 0, 1), day.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, map[int64]struct{}{1: {}, 2: {}}, busy)

	// Touching intervals are free.
	busy, err = repo.BusyItemIDs(ctx, []int64{1, 2}, day.AddDate(0, 0, 2), day.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Empty(t, busy)
}

func TestBookingRepository_LockCandidateItems(t *testing.T) {
	db := openDB(t)
	repo := NewBookingRepository(db)

	items := []domain.EquipmentItem{
		{EquipmentTypeID: 1, InventoryNumber: "A-2"},
		{EquipmentTypeID: 1, InventoryNumber: "A-1"},
		{EquipmentTypeID: 2, InventoryNumber: "B-1"},
	}
	require.NoError(t, db.Create(&items).Error)
	require.NoError(t, db.Model(&domain.EquipmentItem{}).Where("inventory_number = ?", "A-1").Update("available", false).Error)

	err := repo.WithinTransaction(context.Background(), func(tx *BookingRepository) error {
		got, err := tx.LockCandidateItems(context.Background(), []int64{1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A-2", got[0].InventoryNumber)
		return nil
	})
	require.NoError(t, err)
}

func TestBookingRepository_StatusAndDelete(t *testing.T) {
	db := openDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := seedBooking(t, db, 1, domain.BookingPending, 0, 1)

	ok, err := repo.UpdateStatus(ctx, b.ID, domain.BookingApproved, domain.BookingCompleted)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, got.Status)
	assert.Len(t, got.Items, 1)

	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), gorm.ErrRecordNotFound)

	var n int64
	require.NoError(t, db.Model(&domain.BookingItem{}).Count(&n).Error)
	assert.Zero(t, n)

	done := seedBooking(t, db, 2, domain.BookingCompleted, 0, 1)
	assert.ErrorIs(t, repo.Delete(ctx, done.ID), gorm.ErrRecordNotFound)
	require.NoError(t, db.Model(&domain.BookingItem{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository(t *testing.T) {
	db := openDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	veteran := &domain.User{Login: "Veteran", JoinDate: now.AddDate(-2, 0, 0)}
	newbie := &domain.User{Login: "newbie", JoinDate: now.AddDate(0, -3, 0)}
	unknown := &domain.User{Login: "unknown"}
	for _, u := range []*domain.User{veteran, newbie, unknown} {
		require.NoError(t, repo.Create(ctx, u))
	}

	got, err := repo.GetByLogin(ctx, "VETERAN")
	require.NoError(t, err)
	assert.Equal(t, veteran.ID, got.ID)

	n, err := repo.PromoteEligibleOsnova(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = repo.GetByID(ctx, veteran.ID)
	require.NoError(t, err)
	assert.True(t, got.Osnova)

	n, err = repo.PromoteEligibleOsnova(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEquipmentRepository(t *testing.T) {
	db := openDB(t)
	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	cam := domain.EquipmentType{Name: "Canon R6", Category: domain.CategoryCamera}
	mic := domain.EquipmentType{Name: "Rode NTG", Category: domain.CategorySound, AccessTier: domain.TierOsnova}
	require.NoError(t, db.Create(&cam).Error)
	require.NoError(t, db.Create(&mic).Error)
	require.NoError(t, db.Create(&domain.EquipmentItem{EquipmentTypeID: cam.ID, InventoryNumber: "CAM-7"}).Error)

	all, err := repo.ListTypes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sound := domain.CategorySound
	only, err := repo.ListTypes(ctx, &sound)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, domain.TierOsnova, only[0].AccessTier)

	byID, err := repo.GetTypesByIDs(ctx, []int64{cam.ID, 404})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Equal(t, domain.TierStandard, byID[cam.ID].AccessTier)

	it, err := repo.GetItemByInventoryNumber(ctx, "cam-7")
	require.NoError(t, err)
	assert.True(t, it.Available)

	_, err = repo.GetItemByInventoryNumber(ctx, "nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
