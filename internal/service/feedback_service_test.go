package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedbackStore struct {
	feedback map[int]*entity.Feedback
	nextID   int
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{feedback: make(map[int]*entity.Feedback), nextID: 1}
}

func (s *fakeFeedbackStore) GetFeedbackForCreature(_ context.Context, creatureID int) ([]*entity.Feedback, error) {
	var out []*entity.Feedback
	for _, f := range s.feedback {
		if f.CreatureID == creatureID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFeedbackStore) GetAverageRating(_ context.Context, creatureID int) (*float64, error) {
	sum, n := 0, 0
	for _, f := range s.feedback {
		if f.CreatureID == creatureID && f.Rating != nil {
			sum += *f.Rating
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}

func (s *fakeFeedbackStore) CreateFeedback(_ context.Context, f *entity.Feedback) (*entity.Feedback, error) {
	created := *f
	created.ID = s.nextID
	s.nextID++
	s.feedback[created.ID] = &created
	return &created, nil
}

func (s *fakeFeedbackStore) GetFeedbackByID(_ context.Context, id int) (*entity.Feedback, error) {
	f, ok := s.feedback[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return f, nil
}

func (s *fakeFeedbackStore) DeleteFeedback(_ context.Context, id int) (int64, error) {
	if _, ok := s.feedback[id]; !ok {
		return 0, nil
	}
	delete(s.feedback, id)
	return 1, nil
}

func (s *fakeFeedbackStore) GetRecentFeedback(_ context.Context, limit int) ([]*entity.Feedback, error) {
	var out []*entity.Feedback
	for _, f := range s.feedback {
		if len(out) == limit {
			break
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeFeedbackStore) CountFeedback(_ context.Context) (int, error) {
	return len(s.feedback), nil
}

type fakeCreatureChecker struct {
	ids map[int]bool
}

func (c *fakeCreatureChecker) GetCreatureByID(_ context.Context, id int) (*entity.Creature, error) {
	if !c.ids[id] {
		return nil, ErrNotFound
	}
	return &entity.Creature{ID: id, Name: "Lion"}, nil
}

func newFeedbackService() (*FeedbackService, *fakeFeedbackStore) {
	store := newFakeFeedbackStore()
	checker := &fakeCreatureChecker{ids: map[int]bool{1: true}}
	return NewFeedbackService(store, checker), store
}

func intPtr(v int) *int { return &v }

func TestCreateFeedbackRatingBounds(t *testing.T) {
	svc, _ := newFeedbackService()

	tests := []struct {
		name    string
		rating  *int
		wantErr bool
	}{
		{"no rating", nil, false},
		{"lowest", intPtr(1), false},
		{"highest", intPtr(5), false},
		{"below range", intPtr(0), true},
		{"above range", intPtr(6), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateFeedback(context.Background(), 10, 1, "great shot", tt.rating)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateFeedbackTrimsComment(t *testing.T) {
	svc, store := newFeedbackService()

	created, err := svc.CreateFeedback(context.Background(), 10, 1, "  lovely  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "lovely", created.Comment)
	assert.Equal(t, "lovely", store.feedback[created.ID].Comment)
}

func TestCreateFeedbackEmptyComment(t *testing.T) {
	svc, _ := newFeedbackService()

	_, err := svc.CreateFeedback(context.Background(), 10, 1, "   ", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateFeedbackUnknownCreature(t *testing.T) {
	svc, _ := newFeedbackService()

	_, err := svc.CreateFeedback(context.Background(), 10, 99, "nice", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFeedbackOwnership(t *testing.T) {
	svc, _ := newFeedbackService()

	created, err := svc.CreateFeedback(context.Background(), 10, 1, "mine", nil)
	require.NoError(t, err)

	// Another non-admin user may not delete it.
	_, err = svc.DeleteFeedback(context.Background(), created.ID, 11, false)
	assert.ErrorIs(t, err, ErrForbidden)

	// The owner may.
	creatureID, err := svc.DeleteFeedback(context.Background(), created.ID, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 1, creatureID)
}

func TestDeleteFeedbackAsAdmin(t *testing.T) {
	svc, _ := newFeedbackService()

	created, err := svc.CreateFeedback(context.Background(), 10, 1, "mine", nil)
	require.NoError(t, err)

	creatureID, err := svc.DeleteFeedback(context.Background(), created.ID, 99, true)
	require.NoError(t, err)
	assert.Equal(t, 1, creatureID)
}

func TestDeleteFeedbackNotFound(t *testing.T) {
	svc, _ := newFeedbackService()

	_, err := svc.DeleteFeedback(context.Background(), 123, 10, true)
	assert.ErrorIs(t, err, ErrNotFound)
}
