package repository

import (
	"context"
	"database/sql"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db}
}

func (r *FeedbackRepository) GetFeedbackForCreature(ctx context.Context, creatureID int) ([]*entity.Feedback, error) {
	query := `
		SELECT f.id, f.user_id, f.creature_id, f.comment, f.rating, f.created_at, u.username
		FROM feedback f
		JOIN users u ON f.user_id = u.id
		WHERE f.creature_id = ?
		ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, creatureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []*entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		err := rows.Scan(&f.ID, &f.UserID, &f.CreatureID, &f.Comment, &f.Rating, &f.CreatedAt, &f.Username)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, &f)
	}

	return feedback, rows.Err()
}

// GetAverageRating returns nil when the creature has no rated feedback.
func (r *FeedbackRepository) GetAverageRating(ctx context.Context, creatureID int) (*float64, error) {
	var avg sql.NullFloat64
	query := `SELECT AVG(rating) FROM feedback WHERE creature_id = ? AND rating IS NOT NULL`
	err := r.db.QueryRowContext(ctx, query, creatureID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, f *entity.Feedback) (*entity.Feedback, error) {
	query := `INSERT INTO feedback (user_id, creature_id, comment, rating) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, f.UserID, f.CreatureID, f.Comment, f.Rating)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	f.ID = int(id)
	return f, nil
}

func (r *FeedbackRepository) GetFeedbackByID(ctx context.Context, id int) (*entity.Feedback, error) {
	var f entity.Feedback
	query := `SELECT id, user_id, creature_id, comment, rating, created_at FROM feedback WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.UserID, &f.CreatureID, &f.Comment, &f.Rating, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepository) DeleteFeedback(ctx context.Context, id int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *FeedbackRepository) CountFeedback(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&count)
	return count, err
}

func (r *FeedbackRepository) GetRecentFeedback(ctx context.Context, limit int) ([]*entity.Feedback, error) {
	query := `
		SELECT f.id, f.user_id, f.creature_id, f.comment, f.rating, f.created_at, u.username, c.name
		FROM feedback f
		JOIN users u ON f.user_id = u.id
		JOIN creatures c ON f.creature_id = c.id
		ORDER BY f.created_at DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []*entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		err := rows.Scan(&f.ID, &f.UserID, &f.CreatureID, &f.Comment, &f.Rating, &f.CreatedAt, &f.Username, &f.CreatureName)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, &f)
	}

	return feedback, rows.Err()
}
