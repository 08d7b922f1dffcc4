package repository

import (
	"context"
	"database/sql"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db}
}

func (r *ActivityRepository) InsertLog(ctx context.Context, log *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (user_id, username, action, details, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, log.UserID, log.Username, log.Action, log.Details, log.IPAddress, log.UserAgent)
	return err
}

// GetStats aggregates the trailing window. The day count is always a
// bound parameter, never spliced into the query text.
func (r *ActivityRepository) GetStats(ctx context.Context, days int) (*entity.ActivityStats, error) {
	stats := &entity.ActivityStats{}

	rows, err := r.db.QueryContext(ctx, `
		SELECT DATE(created_at) AS date, COUNT(*) AS count
		FROM activity_logs
		WHERE created_at > NOW() - INTERVAL ? DAY
		GROUP BY DATE(created_at)
		ORDER BY date DESC`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DailyActivity
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		stats.DailyActivity = append(stats.DailyActivity, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT action, COUNT(*) AS count
		FROM activity_logs
		WHERE created_at > NOW() - INTERVAL ? DAY
		GROUP BY action
		ORDER BY count DESC
		LIMIT 10`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a entity.ActionCount
		if err := rows.Scan(&a.Action, &a.Count); err != nil {
			return nil, err
		}
		stats.TopActions = append(stats.TopActions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT username, COUNT(*) AS activity_count, MAX(created_at) AS last_active
		FROM activity_logs
		WHERE created_at > NOW() - INTERVAL ? DAY AND username IS NOT NULL AND username != ''
		GROUP BY username
		ORDER BY activity_count DESC
		LIMIT 10`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var u entity.ActiveUser
		if err := rows.Scan(&u.Username, &u.ActivityCount, &u.LastActive); err != nil {
			return nil, err
		}
		stats.ActiveUsers = append(stats.ActiveUsers, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT user_id)
		FROM activity_logs
		WHERE created_at > NOW() - INTERVAL ? DAY`, days).
		Scan(&stats.TotalActivities, &stats.UniqueUsers)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *ActivityRepository) GetRecentLogs(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, user_id, username, action, details, ip_address, user_agent, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		var details, userAgent sql.NullString
		err := rows.Scan(&l.ID, &l.UserID, &l.Username, &l.Action, &details, &l.IPAddress, &userAgent, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		l.Details = details.String
		l.UserAgent = userAgent.String
		logs = append(logs, &l)
	}

	return logs, rows.Err()
}

func (r *ActivityRepository) CountLogs(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&count)
	return count, err
}

// DeleteOldLogs removes rows past the retention window and returns how
// many were dropped.
func (r *ActivityRepository) DeleteOldLogs(ctx context.Context, days int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activity_logs WHERE created_at < NOW() - INTERVAL ? DAY`, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
