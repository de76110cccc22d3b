package tests

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/gokuljawahar87/move-more/models"
	"github.com/gokuljawahar87/move-more/repository"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
)

type IntegrationTestSuite struct {
	suite.Suite
	db         *sql.DB
	profiles   *repository.ProfilesRepository
	activities *repository.ActivitiesRepository
}

func (suite *IntegrationTestSuite) SetupSuite() {
	dsn := os.Getenv("DATABASE_URL")
	db, err := sql.Open("postgres", dsn)
	suite.Require().NoError(err)
	err = db.Ping()
	suite.Require().NoError(err)
	suite.db = db
	suite.profiles = repository.NewProfilesRepository(db)
	suite.activities = repository.NewActivitiesRepository(db)
	suite.prepareDatabase()
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	suite.db.Close()
}

func (suite *IntegrationTestSuite) prepareDatabase() {
	_, err := suite.db.Exec("DROP SCHEMA public CASCADE; CREATE SCHEMA public;")
	suite.Require().NoError(err)

	_, err = suite.db.Exec(`
		CREATE TABLE profiles (
			user_id VARCHAR(50) PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			team VARCHAR(100),
			gender VARCHAR(20),
			avatar_object_id VARCHAR(64),
			strava_connected BOOLEAN NOT NULL DEFAULT FALSE,
			strava_access_token TEXT,
			strava_refresh_token TEXT,
			strava_expires_at BIGINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE activities (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(50) NOT NULL REFERENCES profiles(user_id),
			strava_id BIGINT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			type VARCHAR(50) NOT NULL,
			derived_type VARCHAR(50),
			distance DOUBLE PRECISION NOT NULL DEFAULT 0,
			moving_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			start_date TIMESTAMPTZ NOT NULL,
			manual BOOLEAN NOT NULL DEFAULT FALSE,
			strava_url TEXT NOT NULL DEFAULT '',
			is_valid BOOLEAN DEFAULT TRUE,
			is_valid_locked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`)
	suite.Require().NoError(err)

	_, err = suite.profiles.UpsertProfile("E1001", "Asha", "Nair", nil, nil)
	suite.Require().NoError(err)
}

func (suite *IntegrationTestSuite) activity(stravaID int64) models.Activity {
	return models.Activity{
		UserID:     "E1001",
		StravaID:   stravaID,
		Name:       "Morning Run",
		Type:       "Run",
		Distance:   5000,
		MovingTime: 1800,
		StartDate:  time.Date(2025, 10, 5, 6, 0, 0, 0, time.UTC),
	}
}

func (suite *IntegrationTestSuite) TestUpsertIsIdempotent() {
	n, err := suite.activities.UpsertActivities("E1001", []models.Activity{suite.activity(100)})
	suite.NoError(err)
	suite.Equal(1, n)

	n, err = suite.activities.UpsertActivities("E1001", []models.Activity{suite.activity(100)})
	suite.NoError(err)
	suite.Equal(1, n)

	var count int
	err = suite.db.QueryRow(`SELECT COUNT(*) FROM activities WHERE strava_id = 100`).Scan(&count)
	suite.NoError(err)
	suite.Equal(1, count)
}

func (suite *IntegrationTestSuite) TestLockedVerdictSurvivesReimport() {
	_, err := suite.activities.UpsertActivities("E1001", []models.Activity{suite.activity(200)})
	suite.Require().NoError(err)

	var id int
	err = suite.db.QueryRow(`SELECT id FROM activities WHERE strava_id = 200`).Scan(&id)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.activities.SetValidity(id, false, true))

	updated := suite.activity(200)
	updated.Distance = 9999
	_, err = suite.activities.UpsertActivities("E1001", []models.Activity{updated})
	suite.NoError(err)

	row, err := suite.activities.GetByID(id)
	suite.NoError(err)
	suite.Require().NotNil(row)
	suite.Require().NotNil(row.IsValid)
	suite.False(*row.IsValid)
	suite.True(row.IsValidLocked)
	suite.Equal(5000.0, row.Distance)
}

func (suite *IntegrationTestSuite) TestDerivedTypeIsSticky() {
	_, err := suite.activities.UpsertActivities("E1001", []models.Activity{suite.activity(300)})
	suite.Require().NoError(err)

	suite.NoError(suite.activities.SetDerivedType(300, "Reclassified-Walk"))
	// A second write is ignored while the first is in place.
	suite.NoError(suite.activities.SetDerivedType(300, "Run"))

	var derived sql.NullString
	err = suite.db.QueryRow(`SELECT derived_type FROM activities WHERE strava_id = 300`).Scan(&derived)
	suite.NoError(err)
	suite.True(derived.Valid)
	suite.Equal("Reclassified-Walk", derived.String)
}

func (suite *IntegrationTestSuite) TestSuspiciousListing() {
	_, err := suite.activities.UpsertActivities("E1001", []models.Activity{suite.activity(400)})
	suite.Require().NoError(err)

	var id int
	err = suite.db.QueryRow(`SELECT id FROM activities WHERE strava_id = 400`).Scan(&id)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.activities.SetValidity(id, false, false))

	list, err := suite.activities.ListSuspicious()
	suite.NoError(err)
	found := false
	for _, a := range list {
		if a.StravaID == 400 {
			found = true
			suite.Equal("Asha Nair", a.OwnerName)
		}
	}
	suite.True(found)
}

func (suite *IntegrationTestSuite) TestListForUserNewestFirst() {
	older := suite.activity(500)
	newer := suite.activity(501)
	newer.StartDate = older.StartDate.Add(48 * time.Hour)
	_, err := suite.activities.UpsertActivities("E1001", []models.Activity{older, newer})
	suite.Require().NoError(err)

	list, err := suite.activities.ListForUser("E1001")
	suite.NoError(err)
	suite.Require().NotEmpty(list)
	for i := 1; i < len(list); i++ {
		suite.False(list[i-1].StartDate.Before(list[i].StartDate))
	}
	for _, a := range list {
		suite.Equal("E1001", a.UserID)
	}
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
