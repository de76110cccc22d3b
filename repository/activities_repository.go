package repository

import (
	"database/sql"
	"time"

	"github.com/gokuljawahar87/move-more/models"
)

type ActivitiesRepository struct {
	db *sql.DB
}

func NewActivitiesRepository(db *sql.DB) *ActivitiesRepository {
	return &ActivitiesRepository{db: db}
}

// UpsertActivities inserts or refreshes a batch of imported activities for
// one user. Locked rows are never touched: the admin's validity decision and
// a previously persisted derived_type both survive re-import. Returns the
// number of rows written.
func (r *ActivitiesRepository) UpsertActivities(userID string, acts []models.Activity) (int, error) {
	if len(acts) == 0 {
		return 0, nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	written := 0
	for _, a := range acts {
		res, err := tx.Exec(`
			INSERT INTO activities
				(user_id, strava_id, name, type, distance, moving_time,
				 start_date, manual, strava_url, is_valid, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW())
			ON CONFLICT (strava_id) DO UPDATE SET
				name = EXCLUDED.name,
				type = EXCLUDED.type,
				distance = EXCLUDED.distance,
				moving_time = EXCLUDED.moving_time,
				start_date = EXCLUDED.start_date,
				manual = EXCLUDED.manual,
				strava_url = EXCLUDED.strava_url
			WHERE activities.is_valid_locked = FALSE`,
			userID, a.StravaID, a.Name, a.Type, a.Distance, a.MovingTime,
			a.StartDate, a.Manual, a.StravaURL)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			written++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// ListSince returns all activities starting on/after the given instant,
// joined with owner profiles, newest first. Validity filtering is left to
// the scoring engine so that lock semantics live in one place. A zero since
// returns everything.
func (r *ActivitiesRepository) ListSince(since time.Time) ([]models.ActivityWithProfile, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.user_id, a.strava_id, a.name, a.type, a.derived_type,
		       a.distance, a.moving_time, a.start_date, a.manual, a.strava_url,
		       a.is_valid, a.is_valid_locked, a.created_at,
		       TRIM(CONCAT(p.first_name, ' ', p.last_name)), p.team, p.gender
		FROM activities a
		JOIN profiles p ON p.user_id = a.user_id
		WHERE $1::timestamptz IS NULL OR a.start_date >= $1
		ORDER BY a.start_date DESC`, nullableTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ActivityWithProfile
	for rows.Next() {
		var a models.ActivityWithProfile
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.StravaID, &a.Name, &a.Type, &a.DerivedType,
			&a.Distance, &a.MovingTime, &a.StartDate, &a.Manual, &a.StravaURL,
			&a.IsValid, &a.IsValidLocked, &a.CreatedAt,
			&a.OwnerName, &a.OwnerTeam, &a.OwnerGender); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActivitiesRepository) ListForUser(userID string) ([]models.Activity, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, strava_id, name, type, derived_type, distance,
		       moving_time, start_date, manual, strava_url, is_valid,
		       is_valid_locked, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := scanActivity(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListSuspicious returns activities an admin has marked invalid, for the
// review page.
func (r *ActivitiesRepository) ListSuspicious() ([]models.ActivityWithProfile, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.user_id, a.strava_id, a.name, a.type, a.derived_type,
		       a.distance, a.moving_time, a.start_date, a.manual, a.strava_url,
		       a.is_valid, a.is_valid_locked, a.created_at,
		       TRIM(CONCAT(p.first_name, ' ', p.last_name)), p.team, p.gender
		FROM activities a
		JOIN profiles p ON p.user_id = a.user_id
		WHERE a.is_valid = FALSE
		ORDER BY a.start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ActivityWithProfile
	for rows.Next() {
		var a models.ActivityWithProfile
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.StravaID, &a.Name, &a.Type, &a.DerivedType,
			&a.Distance, &a.MovingTime, &a.StartDate, &a.Manual, &a.StravaURL,
			&a.IsValid, &a.IsValidLocked, &a.CreatedAt,
			&a.OwnerName, &a.OwnerTeam, &a.OwnerGender); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActivitiesRepository) GetByID(id int) (*models.Activity, error) {
	var a models.Activity
	err := r.db.QueryRow(`
		SELECT id, user_id, strava_id, name, type, derived_type, distance,
		       moving_time, start_date, manual, strava_url, is_valid,
		       is_valid_locked, created_at
		FROM activities
		WHERE id = $1`, id).Scan(
		&a.ID, &a.UserID, &a.StravaID, &a.Name, &a.Type, &a.DerivedType,
		&a.Distance, &a.MovingTime, &a.StartDate, &a.Manual, &a.StravaURL,
		&a.IsValid, &a.IsValidLocked, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SetValidity records an admin verdict. With lock set, automated refresh
// will no longer rewrite the row.
func (r *ActivitiesRepository) SetValidity(id int, isValid, lock bool) error {
	_, err := r.db.Exec(`
		UPDATE activities SET is_valid = $2, is_valid_locked = $3
		WHERE id = $1`, id, isValid, lock)
	return err
}

// SetDerivedType persists a reclassification. It never overwrites an
// existing derived type: reclassification is sticky until an admin clears it.
func (r *ActivitiesRepository) SetDerivedType(stravaID int64, derived string) error {
	_, err := r.db.Exec(`
		UPDATE activities SET derived_type = $2
		WHERE strava_id = $1 AND derived_type IS NULL`, stravaID, derived)
	return err
}

// ClearDerivedType removes a reclassification so the next refresh recomputes it.
func (r *ActivitiesRepository) ClearDerivedType(id int) error {
	_, err := r.db.Exec(`UPDATE activities SET derived_type = NULL WHERE id = $1`, id)
	return err
}

func scanActivity(rows *sql.Rows, a *models.Activity) error {
	return rows.Scan(
		&a.ID, &a.UserID, &a.StravaID, &a.Name, &a.Type, &a.DerivedType,
		&a.Distance, &a.MovingTime, &a.StartDate, &a.Manual, &a.StravaURL,
		&a.IsValid, &a.IsValidLocked, &a.CreatedAt)
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
