package entity

import "time"

type Feedback struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	CreatureID int       `json:"creature_id"`
	Comment    string    `json:"comment"`
	Rating     *int      `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Joined columns, populated by list queries.
	Username     string `json:"username,omitempty"`
	CreatureName string `json:"creature_name,omitempty"`
}
