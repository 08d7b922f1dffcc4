package entity

import "time"

// ActivityLog is one append-only audit row. UserID is nil for system
// actions; Username is a snapshot so rows survive user deletion.
type ActivityLog struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id,omitempty"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

type ActiveUser struct {
	Username      string    `json:"username"`
	ActivityCount int       `json:"activity_count"`
	LastActive    time.Time `json:"last_active"`
}

// ActivityStats aggregates the audit trail over a trailing window.
type ActivityStats struct {
	DailyActivity   []DailyActivity `json:"daily_activity"`
	TopActions      []ActionCount   `json:"top_actions"`
	ActiveUsers     []ActiveUser    `json:"active_users"`
	TotalActivities int             `json:"total_activities"`
	UniqueUsers     int             `json:"unique_users"`
}
