package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	images map[int]*entity.Image
	getErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{images: make(map[int]*entity.Image)}
}

func (s *fakeImageStore) GetImage(_ context.Context, creatureID int) (*entity.Image, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	img, ok := s.images[creatureID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return img, nil
}

func (s *fakeImageStore) SaveImage(_ context.Context, creatureID int, data []byte, contentType, originalURL string) error {
	s.images[creatureID] = &entity.Image{
		CreatureID:  creatureID,
		Data:        data,
		ContentType: contentType,
		OriginalURL: originalURL,
		FileSize:    len(data),
		UpdatedAt:   time.Now(),
	}
	return nil
}

func (s *fakeImageStore) ImageExists(_ context.Context, creatureID int) (bool, error) {
	_, ok := s.images[creatureID]
	return ok, nil
}

type fakeImageCache struct {
	entries map[int]*entity.CachedImage
	getErr  error
	setErr  error
}

func newFakeImageCache() *fakeImageCache {
	return &fakeImageCache{entries: make(map[int]*entity.CachedImage)}
}

func (c *fakeImageCache) GetCachedImage(_ context.Context, creatureID int) (*entity.CachedImage, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[creatureID], nil
}

func (c *fakeImageCache) SetCachedImage(_ context.Context, creatureID int, img *entity.CachedImage) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[creatureID] = img
	return nil
}

func (c *fakeImageCache) InvalidateCachedImage(_ context.Context, creatureID int) error {
	delete(c.entries, creatureID)
	return nil
}

func (c *fakeImageCache) Stats(_ context.Context) (*entity.CacheStats, error) {
	return &entity.CacheStats{CachedImages: len(c.entries), MemoryUsed: "1.0M"}, nil
}

func TestGetImageWithCacheColdThenWarm(t *testing.T) {
	store := newFakeImageStore()
	cache := newFakeImageCache()
	require.NoError(t, store.SaveImage(context.Background(), 1, []byte("png-bytes"), "image/png", ""))

	svc := NewImageService(store, cache)

	first, err := svc.GetImageWithCache(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.ImageSourceDatabase, first.Source)
	assert.Equal(t, []byte("png-bytes"), first.Data)
	assert.Equal(t, "image/png", first.ContentType)

	second, err := svc.GetImageWithCache(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.ImageSourceCache, second.Source)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.ContentType, second.ContentType)
}

func TestGetImageWithCacheNotFound(t *testing.T) {
	svc := NewImageService(newFakeImageStore(), newFakeImageCache())

	_, err := svc.GetImageWithCache(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetImageWithCacheFallsBackOnCacheError(t *testing.T) {
	store := newFakeImageStore()
	cache := newFakeImageCache()
	cache.getErr = errors.New("connection refused")
	require.NoError(t, store.SaveImage(context.Background(), 1, []byte("data"), "image/jpeg", ""))

	svc := NewImageService(store, cache)

	result, err := svc.GetImageWithCache(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.ImageSourceDatabase, result.Source)
}

func TestGetImageWithCacheNilCache(t *testing.T) {
	store := newFakeImageStore()
	require.NoError(t, store.SaveImage(context.Background(), 1, []byte("data"), "image/jpeg", ""))

	svc := NewImageService(store, nil)

	result, err := svc.GetImageWithCache(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.ImageSourceDatabase, result.Source)
}

func TestSaveImageInvalidatesCache(t *testing.T) {
	store := newFakeImageStore()
	cache := newFakeImageCache()
	svc := NewImageService(store, cache)

	require.NoError(t, svc.SaveImageWithCacheInvalidation(context.Background(), 1, []byte("v1"), "image/png", ""))

	// Warm the cache.
	_, err := svc.GetImageWithCache(context.Background(), 1)
	require.NoError(t, err)
	require.Contains(t, cache.entries, 1)

	// Re-upload drops the stale entry instead of refreshing it.
	require.NoError(t, svc.SaveImageWithCacheInvalidation(context.Background(), 1, []byte("v2"), "image/png", ""))
	assert.NotContains(t, cache.entries, 1)

	result, err := svc.GetImageWithCache(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.ImageSourceDatabase, result.Source)
	assert.Equal(t, []byte("v2"), result.Data)
}

func TestSaveImageEmptyPayload(t *testing.T) {
	svc := NewImageService(newFakeImageStore(), newFakeImageCache())

	err := svc.SaveImageWithCacheInvalidation(context.Background(), 1, nil, "image/png", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaveImageDefaultContentType(t *testing.T) {
	store := newFakeImageStore()
	svc := NewImageService(store, nil)

	require.NoError(t, svc.SaveImageWithCacheInvalidation(context.Background(), 1, []byte("raw"), "", ""))
	assert.Equal(t, "image/jpeg", store.images[1].ContentType)
}

func TestCacheStatsWithoutCache(t *testing.T) {
	svc := NewImageService(newFakeImageStore(), nil)

	_, err := svc.CacheStats(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "/api/images/7", ImageURL(7))
}
