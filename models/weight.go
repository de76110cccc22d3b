package models

import "time"

// WeightLog is one weigh-in. One row per user per day, newest write wins.
type WeightLog struct {
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Weight    float64   `json:"weight"`
	UpdatedAt time.Time `json:"updated_at"`
}
