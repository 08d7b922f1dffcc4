package service

import (
	"context"
	"time"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

// ActivityStore is the audit-trail storage slice used by the service.
type ActivityStore interface {
	InsertLog(ctx context.Context, log *entity.ActivityLog) error
	GetStats(ctx context.Context, days int) (*entity.ActivityStats, error)
	GetRecentLogs(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, error)
	CountLogs(ctx context.Context) (int, error)
	DeleteOldLogs(ctx context.Context, days int) (int64, error)
}

// EventPublisher fans audit records out to the event bus. Optional and
// best-effort.
type EventPublisher interface {
	PublishActivity(ctx context.Context, log *entity.ActivityLog) error
}

// ActivityService writes the best-effort audit trail. Log never blocks
// or fails the calling request.
type ActivityService struct {
	activityRepo ActivityStore
	publisher    EventPublisher
}

func NewActivityService(activityRepo ActivityStore, publisher EventPublisher) *ActivityService {
	return &ActivityService{activityRepo: activityRepo, publisher: publisher}
}

// Log appends an audit row in the background. The write gets its own
// deadline because the request context may already be gone by the time
// the insert runs. Failures are logged server-side and swallowed.
func (s *ActivityService) Log(userID *int, username, action, details, ip, userAgent string) {
	record := &entity.ActivityLog{
		UserID:    userID,
		Username:  username,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.activityRepo.InsertLog(ctx, record); err != nil {
			logger.Error().Err(err).Str("action", action).Msg("Activity log write failed")
		}

		if s.publisher != nil {
			if err := s.publisher.PublishActivity(ctx, record); err != nil {
				logger.Warn().Err(err).Str("action", action).Msg("Activity event publish failed")
			}
		}
	}()
}

func (s *ActivityService) Stats(ctx context.Context, days int) (*entity.ActivityStats, error) {
	if days < 1 {
		days = 7
	}
	stats, err := s.activityRepo.GetStats(ctx, days)
	if err != nil {
		logger.Error().Err(err).Msg("Activity stats query failed")
		return nil, err
	}
	return stats, nil
}

func (s *ActivityService) RecentLogs(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, error) {
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.activityRepo.GetRecentLogs(ctx, limit, offset)
}

func (s *ActivityService) LogCount(ctx context.Context) (int, error) {
	return s.activityRepo.CountLogs(ctx)
}

// CleanOldLogs drops rows older than the retention window and returns
// how many were removed.
func (s *ActivityService) CleanOldLogs(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		days = 30
	}
	deleted, err := s.activityRepo.DeleteOldLogs(ctx, days)
	if err != nil {
		logger.Error().Err(err).Msg("Activity log cleanup failed")
		return 0, err
	}
	return deleted, nil
}
