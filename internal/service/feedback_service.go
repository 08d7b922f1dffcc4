package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

// FeedbackStore is the slice of the feedback repository the service
// needs; tests substitute a fake.
type FeedbackStore interface {
	GetFeedbackForCreature(ctx context.Context, creatureID int) ([]*entity.Feedback, error)
	GetAverageRating(ctx context.Context, creatureID int) (*float64, error)
	CreateFeedback(ctx context.Context, f *entity.Feedback) (*entity.Feedback, error)
	GetFeedbackByID(ctx context.Context, id int) (*entity.Feedback, error)
	DeleteFeedback(ctx context.Context, id int) (int64, error)
	GetRecentFeedback(ctx context.Context, limit int) ([]*entity.Feedback, error)
	CountFeedback(ctx context.Context) (int, error)
}

// CreatureChecker confirms the target creature exists before feedback
// is attached to it.
type CreatureChecker interface {
	GetCreatureByID(ctx context.Context, id int) (*entity.Creature, error)
}

type FeedbackService struct {
	feedbackRepo FeedbackStore
	creatures    CreatureChecker
}

func NewFeedbackService(feedbackRepo FeedbackStore, creatures CreatureChecker) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo, creatures: creatures}
}

func (s *FeedbackService) GetFeedbackForCreature(ctx context.Context, creatureID int) ([]*entity.Feedback, error) {
	return s.feedbackRepo.GetFeedbackForCreature(ctx, creatureID)
}

func (s *FeedbackService) GetAverageRating(ctx context.Context, creatureID int) (*float64, error) {
	return s.feedbackRepo.GetAverageRating(ctx, creatureID)
}

// CreateFeedback validates and stores a comment with an optional
// rating. Rating, when present, must be within [1,5].
func (s *FeedbackService) CreateFeedback(ctx context.Context, userID, creatureID int, comment string, rating *int) (*entity.Feedback, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("comment is required: %w", ErrValidation)
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	_, err := s.creatures.GetCreatureByID(ctx, creatureID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("creature %d: %w", creatureID, ErrNotFound)
		}
		return nil, err
	}

	created, err := s.feedbackRepo.CreateFeedback(ctx, &entity.Feedback{
		UserID:     userID,
		CreatureID: creatureID,
		Comment:    comment,
		Rating:     rating,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating feedback for creature %d", creatureID)
		return nil, err
	}

	return created, nil
}

// DeleteFeedback removes a feedback row. Only the owning user or an
// admin may delete; everyone else gets ErrForbidden. Returns the
// creature id so handlers can redirect back to the detail page.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, feedbackID, userID int, isAdmin bool) (int, error) {
	feedback, err := s.feedbackRepo.GetFeedbackByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("feedback %d: %w", feedbackID, ErrNotFound)
		}
		return 0, err
	}

	if !isAdmin && feedback.UserID != userID {
		return 0, fmt.Errorf("feedback %d belongs to another user: %w", feedbackID, ErrForbidden)
	}

	if _, err := s.feedbackRepo.DeleteFeedback(ctx, feedbackID); err != nil {
		logger.Error().Err(err).Msgf("Error deleting feedback %d", feedbackID)
		return 0, err
	}

	return feedback.CreatureID, nil
}

func (s *FeedbackService) GetRecentFeedback(ctx context.Context, limit int) ([]*entity.Feedback, error) {
	if limit < 1 {
		limit = 10
	}
	return s.feedbackRepo.GetRecentFeedback(ctx, limit)
}

func (s *FeedbackService) FeedbackCount(ctx context.Context) (int, error) {
	return s.feedbackRepo.CountFeedback(ctx)
}
