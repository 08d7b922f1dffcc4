package service

import (
	"context"
	"testing"
	"time"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityStore struct {
	inserted chan *entity.ActivityLog
	statsFor int
	cleanFor int
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{inserted: make(chan *entity.ActivityLog, 8)}
}

func (s *fakeActivityStore) InsertLog(_ context.Context, log *entity.ActivityLog) error {
	s.inserted <- log
	return nil
}

func (s *fakeActivityStore) GetStats(_ context.Context, days int) (*entity.ActivityStats, error) {
	s.statsFor = days
	return &entity.ActivityStats{}, nil
}

func (s *fakeActivityStore) GetRecentLogs(_ context.Context, limit, offset int) ([]*entity.ActivityLog, error) {
	return nil, nil
}

func (s *fakeActivityStore) CountLogs(_ context.Context) (int, error) { return 0, nil }

func (s *fakeActivityStore) DeleteOldLogs(_ context.Context, days int) (int64, error) {
	s.cleanFor = days
	return 3, nil
}

type fakePublisher struct {
	published chan *entity.ActivityLog
}

func (p *fakePublisher) PublishActivity(_ context.Context, log *entity.ActivityLog) error {
	p.published <- log
	return nil
}

func waitForLog(t *testing.T, ch chan *entity.ActivityLog) *entity.ActivityLog {
	t.Helper()
	select {
	case log := <-ch:
		return log
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity log write")
		return nil
	}
}

func TestLogWritesInBackground(t *testing.T) {
	store := newFakeActivityStore()
	pub := &fakePublisher{published: make(chan *entity.ActivityLog, 8)}
	svc := NewActivityService(store, pub)

	userID := 7
	svc.Log(&userID, "alice", "LOGIN", "", "1.2.3.4", "curl/8")

	record := waitForLog(t, store.inserted)
	require.NotNil(t, record.UserID)
	assert.Equal(t, 7, *record.UserID)
	assert.Equal(t, "LOGIN", record.Action)
	assert.Equal(t, "1.2.3.4", record.IPAddress)

	published := waitForLog(t, pub.published)
	assert.Equal(t, record, published)
}

func TestLogAnonymousUser(t *testing.T) {
	store := newFakeActivityStore()
	svc := NewActivityService(store, nil)

	svc.Log(nil, "", "PAGE_VIEW", "GET /", "1.2.3.4", "")

	record := waitForLog(t, store.inserted)
	assert.Nil(t, record.UserID)
	assert.Equal(t, "PAGE_VIEW", record.Action)
}

func TestStatsDefaultWindow(t *testing.T) {
	store := newFakeActivityStore()
	svc := NewActivityService(store, nil)

	_, err := svc.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 7, store.statsFor)

	_, err = svc.Stats(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 30, store.statsFor)
}

func TestCleanOldLogsDefaultRetention(t *testing.T) {
	store := newFakeActivityStore()
	svc := NewActivityService(store, nil)

	deleted, err := svc.CleanOldLogs(context.Background(), -1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, 30, store.cleanFor)
}
