package repository

import (
	"database/sql"
)

type ReactionsRepository struct {
	db *sql.DB
}

func NewReactionsRepository(db *sql.DB) *ReactionsRepository {
	return &ReactionsRepository{db: db}
}

// Reaction toggle outcomes.
const (
	ReactionInserted = "inserted"
	ReactionUpdated  = "updated"
	ReactionRemoved  = "removed"
)

// Toggle applies one click: same reaction again removes it, a different one
// switches it, none yet inserts it.
func (r *ReactionsRepository) Toggle(activityID int, userID, reactionType string) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var existingID int
	var existingType string
	err = tx.QueryRow(`
		SELECT id, reaction_type FROM activity_reactions
		WHERE activity_id = $1 AND user_id = $2`,
		activityID, userID).Scan(&existingID, &existingType)

	action := ""
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(`
			INSERT INTO activity_reactions (activity_id, user_id, reaction_type, created_at)
			VALUES ($1, $2, $3, NOW())`, activityID, userID, reactionType)
		action = ReactionInserted
	case err != nil:
		return "", err
	case existingType == reactionType:
		_, err = tx.Exec(`DELETE FROM activity_reactions WHERE id = $1`, existingID)
		action = ReactionRemoved
	default:
		_, err = tx.Exec(`UPDATE activity_reactions SET reaction_type = $2 WHERE id = $1`,
			existingID, reactionType)
		action = ReactionUpdated
	}
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return action, nil
}

// Counts returns reaction totals for one activity keyed by reaction type.
func (r *ReactionsRepository) Counts(activityID int) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT reaction_type, COUNT(*) FROM activity_reactions
		WHERE activity_id = $1
		GROUP BY reaction_type`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}
