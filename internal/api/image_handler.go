package api

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

const errorPlaceholderURL = "https://placehold.co/400x300/e74c3c/ffffff?text=Error"

type ImageHandler struct {
	imageService   *service.ImageService
	placeholderURL string
}

func NewImageHandler(imageService *service.ImageService, placeholderURL string) *ImageHandler {
	return &ImageHandler{imageService: imageService, placeholderURL: placeholderURL}
}

// Serve returns the creature's image --> GET /api/images/:creatureId
//
// The entity tag is a content hash of the served bytes; a matching
// If-None-Match answers 304 with no body. X-Cache reports whether the
// bytes came from Redis or the database. Failures redirect to a
// placeholder instead of surfacing an error status.
func (h *ImageHandler) Serve(c echo.Context) error {
	creatureID, err := strconv.Atoi(c.Param("creatureId"))
	if err != nil || creatureID <= 0 {
		return c.JSON(400, map[string]string{"error": "Invalid creature ID"})
	}

	result, err := h.imageService.GetImageWithCache(c.Request().Context(), creatureID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Redirect(302, h.placeholderURL)
		}
		logger.Error().Err(err).Int("creature_id", creatureID).Msg("Error serving image")
		return c.Redirect(302, errorPlaceholderURL)
	}

	sum := md5.Sum(result.Data)
	etag := hex.EncodeToString(sum[:])

	xcache := "MISS"
	if result.Source == entity.ImageSourceCache {
		xcache = "HIT"
	}
	c.Response().Header().Set("X-Cache", xcache)
	c.Response().Header().Set("ETag", etag)

	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(304)
	}

	c.Response().Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(200, result.ContentType, result.Data)
}

// CacheStats reports the image cache footprint --> GET /api/images/cache/stats
func (h *ImageHandler) CacheStats(c echo.Context) error {
	stats, err := h.imageService.CacheStats(c.Request().Context())
	if err != nil {
		return c.JSON(200, map[string]string{"error": "Redis not available"})
	}
	return c.JSON(200, stats)
}

const maxUploadSize = 10 << 20 // 10 MiB

// Upload replaces a creature's image --> PUT /admin/creatures/:id/image
//
// Accepts a multipart "image" file field or a raw body with a
// Content-Type header.
func (h *ImageHandler) Upload(c echo.Context) error {
	creatureID, err := strconv.Atoi(c.Param("id"))
	if err != nil || creatureID <= 0 {
		return c.JSON(400, map[string]string{"error": "Invalid creature ID"})
	}

	var data []byte
	contentType := ""

	file, err := c.FormFile("image")
	if err == nil {
		src, err := file.Open()
		if err != nil {
			return errorJSON(c, err)
		}
		defer src.Close()
		data, err = io.ReadAll(io.LimitReader(src, maxUploadSize))
		if err != nil {
			return errorJSON(c, err)
		}
		contentType = file.Header.Get("Content-Type")
	} else {
		data, err = io.ReadAll(io.LimitReader(c.Request().Body, maxUploadSize))
		if err != nil {
			return errorJSON(c, err)
		}
		contentType = c.Request().Header.Get("Content-Type")
	}

	if err := h.imageService.SaveImageWithCacheInvalidation(c.Request().Context(), creatureID, data, contentType, ""); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]any{
		"message":   "Image saved",
		"image_url": service.ImageURL(creatureID),
	})
}
