package repository

import (
	"database/sql"
	"time"

	"github.com/gokuljawahar87/move-more/models"
)

type WeightsRepository struct {
	db *sql.DB
}

func NewWeightsRepository(db *sql.DB) *WeightsRepository {
	return &WeightsRepository{db: db}
}

func (r *WeightsRepository) Upsert(userID, date string, weight float64) error {
	_, err := r.db.Exec(`
		INSERT INTO weight_logs (user_id, date, weight, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, date) DO UPDATE SET
			weight = EXCLUDED.weight,
			updated_at = NOW()`,
		userID, date, weight)
	return err
}

func (r *WeightsRepository) List(userID string) ([]models.WeightLog, error) {
	rows, err := r.db.Query(`
		SELECT user_id, date, weight, updated_at
		FROM weight_logs
		WHERE user_id = $1
		ORDER BY date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.WeightLog
	for rows.Next() {
		var w models.WeightLog
		var date time.Time
		if err := rows.Scan(&w.UserID, &date, &w.Weight, &w.UpdatedAt); err != nil {
			return nil, err
		}
		w.Date = date.Format("2006-01-02")
		logs = append(logs, w)
	}
	return logs, rows.Err()
}
