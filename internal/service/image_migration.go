package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

// CreatureImageLister exposes the creature rows the migration walks and
// the image_url rewrite it performs.
type CreatureImageLister interface {
	GetAllCreatures(ctx context.Context, categoryID int) ([]*entity.Creature, error)
	UpdateImageURL(ctx context.Context, id int, imageURL string) error
}

// MigrationReport summarizes one MigrateExternalImages run.
type MigrationReport struct {
	Migrated int      `json:"migrated"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed,omitempty"`
}

const maxImageDownload = 10 << 20 // 10 MiB

// MigrateExternalImages downloads every creature's external image into
// the database and repoints image_url at the internal endpoint.
// Creatures already pointing at /api/images or without a URL are
// skipped; individual download failures are recorded, not fatal.
func (s *ImageService) MigrateExternalImages(ctx context.Context, creatures CreatureImageLister) (*MigrationReport, error) {
	all, err := creatures.GetAllCreatures(ctx, 0)
	if err != nil {
		return nil, err
	}

	report := &MigrationReport{}
	for _, c := range all {
		if c.ImageURL == "" || strings.HasPrefix(c.ImageURL, "/api/images/") {
			report.Skipped++
			continue
		}

		data, contentType, err := downloadImage(ctx, c.ImageURL)
		if err != nil {
			logger.Warn().Err(err).Str("creature", c.Name).Msg("Image download failed")
			report.Failed = append(report.Failed, c.Name)
			continue
		}

		if err := s.SaveImageWithCacheInvalidation(ctx, c.ID, data, contentType, c.ImageURL); err != nil {
			logger.Error().Err(err).Str("creature", c.Name).Msg("Image save failed during migration")
			report.Failed = append(report.Failed, c.Name)
			continue
		}

		if err := creatures.UpdateImageURL(ctx, c.ID, ImageURL(c.ID)); err != nil {
			logger.Error().Err(err).Str("creature", c.Name).Msg("image_url rewrite failed")
			report.Failed = append(report.Failed, c.Name)
			continue
		}

		report.Migrated++
	}

	return report, nil
}

func downloadImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageDownload))
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}
