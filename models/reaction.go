package models

import "time"

// Reaction is one user's cheer on an activity. A user holds at most one
// reaction per activity; posting a different type switches it, posting the
// same type removes it.
type Reaction struct {
	ID           int       `json:"id"`
	ActivityID   int       `json:"activity_id"`
	UserID       string    `json:"user_id"`
	ReactionType string    `json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}
