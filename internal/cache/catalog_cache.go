package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"gutvbooker/internal/domain"
	"gutvbooker/internal/logger"
	"gutvbooker/internal/repository"
)

const typeKeyPrefix = "gutvbooker:equipment_type:"

// CatalogCache is the equipment repository with a Redis read-through cache
// in front of GetTypesByIDs. Redis failures fall back to the database.
type CatalogCache struct {
	*repository.EquipmentRepository
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(repo *repository.EquipmentRepository, rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{EquipmentRepository: repo, rdb: rdb, ttl: ttl}
}

func typeKey(id int64) string {
	return typeKeyPrefix + strconv.FormatInt(id, 10)
}

func (c *CatalogCache) GetTypesByIDs(ctx context.Context, ids []int64) (map[int64]domain.EquipmentType, error) {
	if len(ids) == 0 {
		return map[int64]domain.EquipmentType{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = typeKey(id)
	}

	out := make(map[int64]domain.EquipmentType, len(ids))
	var missing []int64

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		logger.WarnContext(ctx, "catalog cache read failed", "error", err)
		return c.EquipmentRepository.GetTypesByIDs(ctx, ids)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var t domain.EquipmentType
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		out[t.ID] = t
	}

	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := c.EquipmentRepository.GetTypesByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	pipe := c.rdb.Pipeline()
	for id, t := range loaded {
		out[id] = t
		if b, err := json.Marshal(t); err == nil {
			pipe.Set(ctx, typeKey(id), b, c.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.WarnContext(ctx, "catalog cache write failed", "error", err)
	}

	return out, nil
}
