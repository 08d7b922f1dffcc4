// Package cache holds the Redis-backed accelerators: the image cache
// and the session store. Both are expendable; the database stays
// authoritative.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-redis/redis/v8"
	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

type ImageCache struct {
	rdb *redis.Client
}

func NewImageCache(rdb *redis.Client) *ImageCache {
	return &ImageCache{rdb: rdb}
}

func imageKey(creatureID int) string {
	return fmt.Sprintf("image:%d", creatureID)
}

// GetCachedImage returns (nil, nil) on a miss.
func (c *ImageCache) GetCachedImage(ctx context.Context, creatureID int) (*entity.CachedImage, error) {
	val, err := c.rdb.Get(ctx, imageKey(creatureID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var img entity.CachedImage
	if err := json.Unmarshal([]byte(val), &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (c *ImageCache) SetCachedImage(ctx context.Context, creatureID int, img *entity.CachedImage) error {
	data, err := json.Marshal(img)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, imageKey(creatureID), data, service.ImageCacheTTL).Err()
}

func (c *ImageCache) InvalidateCachedImage(ctx context.Context, creatureID int) error {
	return c.rdb.Del(ctx, imageKey(creatureID)).Err()
}

var memoryUsedRe = regexp.MustCompile(`used_memory_human:(\S+)`)

// Stats counts image keys and reads used_memory_human from INFO.
func (c *ImageCache) Stats(ctx context.Context) (*entity.CacheStats, error) {
	keys, err := c.rdb.Keys(ctx, "image:*").Result()
	if err != nil {
		return nil, err
	}

	stats := &entity.CacheStats{
		CachedImages: len(keys),
		MemoryUsed:   "unknown",
	}

	info, err := c.rdb.Info(ctx, "memory").Result()
	if err != nil {
		return nil, err
	}
	if m := memoryUsedRe.FindStringSubmatch(info); m != nil {
		stats.MemoryUsed = m[1]
	}

	return stats, nil
}
