package entity

import "time"

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithStats is the admin listing row: a user plus aggregates
// pulled from feedback and activity_logs.
type UserWithStats struct {
	User
	FeedbackCount int        `json:"feedback_count"`
	LastActive    *time.Time `json:"last_active,omitempty"`
}
