package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gutvbooker/internal/database"
	"gutvbooker/internal/domain"
	"gutvbooker/internal/repository"
)

func TestCatalogCache_FallsBackWhenRedisIsDown(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	typ := domain.EquipmentType{Name: "Zoom H6", Category: domain.CategorySound, AccessTier: domain.TierRonin}
	require.NoError(t, db.Create(&typ).Error)

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewCatalogCache(repository.NewEquipmentRepository(db), rdb, time.Minute)

	got, err := c.GetTypesByIDs(context.Background(), []int64{typ.ID})
	require.NoError(t, err)
	require.Contains(t, got, typ.ID)
	assert.Equal(t, domain.TierRonin, got[typ.ID].AccessTier)

	empty, err := c.GetTypesByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}
