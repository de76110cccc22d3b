package repository

import (
	"database/sql"

	"github.com/gokuljawahar87/move-more/models"
)

type ProfilesRepository struct {
	db *sql.DB
}

func NewProfilesRepository(db *sql.DB) *ProfilesRepository {
	return &ProfilesRepository{db: db}
}

func (r *ProfilesRepository) UpsertProfile(userID, firstName, lastName string, team, gender *string) (*models.Profile, error) {
	_, err := r.db.Exec(`
		INSERT INTO profiles (user_id, first_name, last_name, team, gender, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			team = EXCLUDED.team,
			gender = EXCLUDED.gender`,
		userID, firstName, lastName, team, gender)
	if err != nil {
		return nil, err
	}
	return r.GetProfileByUserID(userID)
}

func (r *ProfilesRepository) GetProfileByUserID(userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRow(`
		SELECT user_id, first_name, last_name, team, gender, avatar_object_id,
		       strava_connected, strava_access_token, strava_refresh_token,
		       strava_expires_at, created_at
		FROM profiles
		WHERE user_id = $1`, userID).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.Team, &p.Gender, &p.AvatarObjectID,
		&p.StravaConnected, &p.StravaAccessToken, &p.StravaRefreshToken,
		&p.StravaExpiresAt, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfilesRepository) SaveStravaTokens(userID, accessToken, refreshToken string, expiresAt int64) error {
	_, err := r.db.Exec(`
		UPDATE profiles SET
			strava_connected = TRUE,
			strava_access_token = $2,
			strava_refresh_token = $3,
			strava_expires_at = $4
		WHERE user_id = $1`,
		userID, accessToken, refreshToken, expiresAt)
	return err
}

func (r *ProfilesRepository) GetConnectedProfiles() ([]models.Profile, error) {
	rows, err := r.db.Query(`
		SELECT user_id, first_name, last_name, team, gender, avatar_object_id,
		       strava_connected, strava_access_token, strava_refresh_token,
		       strava_expires_at, created_at
		FROM profiles
		WHERE strava_connected = TRUE
		ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// ListTeams returns the distinct team names across registered profiles.
func (r *ProfilesRepository) ListTeams() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT team FROM profiles
		WHERE team IS NOT NULL
		ORDER BY team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var teams []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *ProfilesRepository) SetAvatarObject(userID, objectID string) error {
	_, err := r.db.Exec(`UPDATE profiles SET avatar_object_id = $2 WHERE user_id = $1`, userID, objectID)
	return err
}

func scanProfiles(rows *sql.Rows) ([]models.Profile, error) {
	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.UserID, &p.FirstName, &p.LastName, &p.Team, &p.Gender, &p.AvatarObjectID,
			&p.StravaConnected, &p.StravaAccessToken, &p.StravaRefreshToken,
			&p.StravaExpiresAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
