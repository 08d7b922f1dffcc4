package repository

import (
	"context"
	"database/sql"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db}
}

func (r *ImageRepository) GetImage(ctx context.Context, creatureID int) (*entity.Image, error) {
	var img entity.Image
	query := `SELECT id, creature_id, image_data, content_type, file_size, updated_at FROM images WHERE creature_id = ?`
	err := r.db.QueryRowContext(ctx, query, creatureID).Scan(&img.ID, &img.CreatureID, &img.Data, &img.ContentType, &img.FileSize, &img.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// SaveImage upserts the single row keyed by creature id: insert, or on
// conflict replace the blob, content type, size and bump updated_at.
func (r *ImageRepository) SaveImage(ctx context.Context, creatureID int, data []byte, contentType, originalURL string) error {
	query := `
		INSERT INTO images (creature_id, image_data, content_type, original_url, file_size)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			image_data = VALUES(image_data),
			content_type = VALUES(content_type),
			original_url = VALUES(original_url),
			file_size = VALUES(file_size),
			updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, query, creatureID, data, contentType, originalURL, len(data))
	return err
}

func (r *ImageRepository) ImageExists(ctx context.Context, creatureID int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM images WHERE creature_id = ?`, creatureID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ImageRepository) CountImages(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&count)
	return count, err
}
