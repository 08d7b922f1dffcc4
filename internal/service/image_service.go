package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ImageCacheTTL bounds staleness for any write path that bypasses
// SaveImageWithCacheInvalidation.
const ImageCacheTTL = 30 * time.Minute

// ImageStore is the authoritative image storage, backed by the
// relational database.
type ImageStore interface {
	GetImage(ctx context.Context, creatureID int) (*entity.Image, error)
	SaveImage(ctx context.Context, creatureID int, data []byte, contentType, originalURL string) error
	ImageExists(ctx context.Context, creatureID int) (bool, error)
}

// ImageCache is the volatile accelerator in front of the store. Every
// method may fail; callers treat failures as misses.
type ImageCache interface {
	GetCachedImage(ctx context.Context, creatureID int) (*entity.CachedImage, error)
	SetCachedImage(ctx context.Context, creatureID int, img *entity.CachedImage) error
	InvalidateCachedImage(ctx context.Context, creatureID int) error
	Stats(ctx context.Context) (*entity.CacheStats, error)
}

// ImageService serves creature images cache-first with a database
// fallback that repopulates the cache on miss.
type ImageService struct {
	store ImageStore
	cache ImageCache
}

func NewImageService(store ImageStore, cache ImageCache) *ImageService {
	return &ImageService{store: store, cache: cache}
}

// ImageResult is one served image plus where it came from.
type ImageResult struct {
	Data        []byte
	ContentType string
	Source      entity.ImageSource
}

// GetImageWithCache reads cache-first. Cache errors on either the read
// or the repopulate are swallowed; only a missing database row or a
// database failure surfaces to the caller. Never mutates the store.
func (s *ImageService) GetImageWithCache(ctx context.Context, creatureID int) (*ImageResult, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCachedImage(ctx, creatureID)
		if err != nil {
			logger.Warn().Err(err).Int("creature_id", creatureID).Msg("Cache read failed, falling back to database")
		} else if cached != nil {
			return &ImageResult{
				Data:        cached.Data,
				ContentType: cached.ContentType,
				Source:      entity.ImageSourceCache,
			}, nil
		}
	}

	img, err := s.store.GetImage(ctx, creatureID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("image for creature %d: %w", creatureID, ErrNotFound)
		}
		return nil, err
	}

	if s.cache != nil {
		err := s.cache.SetCachedImage(ctx, creatureID, &entity.CachedImage{
			Data:        img.Data,
			ContentType: img.ContentType,
			FileSize:    img.FileSize,
			UpdatedAt:   img.UpdatedAt,
		})
		if err != nil {
			logger.Warn().Err(err).Int("creature_id", creatureID).Msg("Cache write failed")
		}
	}

	return &ImageResult{
		Data:        img.Data,
		ContentType: img.ContentType,
		Source:      entity.ImageSourceDatabase,
	}, nil
}

// SaveImageWithCacheInvalidation upserts the image row then deletes the
// cache entry. Invalidate, do not refresh: the next read repopulates.
func (s *ImageService) SaveImageWithCacheInvalidation(ctx context.Context, creatureID int, data []byte, contentType, originalURL string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty image payload: %w", ErrValidation)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	if err := s.store.SaveImage(ctx, creatureID, data, contentType, originalURL); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateCachedImage(ctx, creatureID); err != nil {
			logger.Warn().Err(err).Int("creature_id", creatureID).Msg("Cache invalidation failed")
		}
	}

	return nil
}

func (s *ImageService) ImageExists(ctx context.Context, creatureID int) (bool, error) {
	return s.store.ImageExists(ctx, creatureID)
}

// ImageURL returns the internal serving path for a creature.
func ImageURL(creatureID int) string {
	return fmt.Sprintf("/api/images/%d", creatureID)
}

// CacheStats reports the cache footprint, or ErrUnavailable when the
// cache is unreachable or not configured.
func (s *ImageService) CacheStats(ctx context.Context) (*entity.CacheStats, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("cache not configured: %w", ErrUnavailable)
	}
	stats, err := s.cache.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache stats: %w", ErrUnavailable)
	}
	return stats, nil
}
