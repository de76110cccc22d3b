package refresh

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/models"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/scoring"
	"github.com/gokuljawahar87/move-more/strava"
	"github.com/gokuljawahar87/move-more/types"

	"golang.org/x/oauth2"
)

// userDelay spaces out per-user Strava pulls during a sweep, on top of the
// client's own rate limiter.
const userDelay = 150 * time.Millisecond

// tokenSlack refreshes access tokens this long before they actually expire.
const tokenSlack = 60 * time.Second

// Service re-imports activities for connected users: token upkeep, paged
// pulls, lock-preserving upserts and derived-category persistence.
type Service struct {
	profilesRepo   *repository.ProfilesRepository
	activitiesRepo *repository.ActivitiesRepository
	client         *strava.Client
	oauth          *oauth2.Config
	challenge      *initializers.ChallengeConfig
}

func NewService(pr *repository.ProfilesRepository, ar *repository.ActivitiesRepository, client *strava.Client, oauth *oauth2.Config, challenge *initializers.ChallengeConfig) *Service {
	return &Service{
		profilesRepo:   pr,
		activitiesRepo: ar,
		client:         client,
		oauth:          oauth,
		challenge:      challenge,
	}
}

// ensureToken returns a usable access token for the profile, running the
// refresh-token grant and persisting the result when the stored token is
// expired or close to it.
func (s *Service) ensureToken(ctx context.Context, p models.Profile) (string, error) {
	if p.StravaAccessToken == nil || p.StravaRefreshToken == nil {
		return "", ErrNotConnected
	}
	var expiry time.Time
	if p.StravaExpiresAt != nil {
		expiry = time.Unix(*p.StravaExpiresAt, 0)
	}
	if time.Until(expiry) > tokenSlack {
		return *p.StravaAccessToken, nil
	}

	src := s.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  *p.StravaAccessToken,
		RefreshToken: *p.StravaRefreshToken,
		Expiry:       expiry,
	})
	token, err := src.Token()
	if err != nil {
		return "", err
	}
	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = *p.StravaRefreshToken
	}
	if err := s.profilesRepo.SaveStravaTokens(p.UserID, token.AccessToken, refreshToken, token.Expiry.Unix()); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// RefreshUser re-imports one user's activities from `after` onward. Rows
// starting past the competition end are dropped; locked verdicts and sticky
// derived categories survive the upsert.
func (s *Service) RefreshUser(ctx context.Context, p models.Profile, after time.Time) (int, error) {
	token, err := s.ensureToken(ctx, p)
	if err != nil {
		return 0, err
	}
	acts, err := s.client.GetAllActivities(ctx, token, after)
	if err != nil {
		return 0, err
	}

	rows := make([]models.Activity, 0, len(acts))
	for _, a := range acts {
		if !s.challenge.CompetitionEnd.IsZero() && a.StartDate.After(s.challenge.CompetitionEnd) {
			continue
		}
		rows = append(rows, models.Activity{
			UserID:     p.UserID,
			StravaID:   a.ID,
			Name:       a.Name,
			Type:       a.Type,
			Distance:   a.Distance,
			MovingTime: float64(a.MovingTime),
			StartDate:  a.StartDate,
			Manual:     a.Manual,
			StravaURL:  a.URL(),
		})
	}
	written, err := s.activitiesRepo.UpsertActivities(p.UserID, rows)
	if err != nil {
		return 0, err
	}
	s.persistDerivedTypes(rows)
	return written, nil
}

// persistDerivedTypes stores a reclassification for newly imported rows.
// The repository only writes where derived_type is still NULL, so an
// existing derived category, including one an admin cleared after review,
// is never overwritten here.
func (s *Service) persistDerivedTypes(rows []models.Activity) {
	for _, row := range rows {
		a := scoring.Normalize(scoring.RawActivity{
			ID:         strconv.FormatInt(row.StravaID, 10),
			UserID:     row.UserID,
			Type:       row.Type,
			Distance:   row.Distance,
			MovingTime: row.MovingTime,
			StartDate:  row.StartDate,
			Manual:     row.Manual,
		})
		if c := scoring.Classify(a); c != a.Category {
			if err := s.activitiesRepo.SetDerivedType(row.StravaID, string(c)); err != nil {
				slog.Error("persisting derived type failed", "stravaId", row.StravaID, "err", err)
			}
		}
	}
}

// RefreshAll sweeps every connected profile from the challenge start. A
// failing user is logged and skipped, never aborts the sweep.
func (s *Service) RefreshAll(ctx context.Context) (types.RefreshStats, error) {
	profiles, err := s.profilesRepo.GetConnectedProfiles()
	if err != nil {
		return types.RefreshStats{}, err
	}
	stats := types.RefreshStats{UsersScanned: len(profiles)}
	for i, p := range profiles {
		if i > 0 {
			select {
			case <-time.After(userDelay):
			case <-ctx.Done():
				return stats, ctx.Err()
			}
		}
		if _, err := s.RefreshUser(ctx, p, s.challenge.ChallengeStart); err != nil {
			slog.Error("refresh failed for user", "userId", p.UserID, "name", p.FullName(), "err", err)
			continue
		}
		stats.Refreshed++
	}
	return stats, nil
}

// RunNightly triggers RefreshAll on the given interval until the context is
// canceled. Meant to run in its own goroutine from main.
func (s *Service) RunNightly(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := s.RefreshAll(ctx)
			if err != nil {
				slog.Error("scheduled refresh failed", "err", err)
				continue
			}
			slog.Info("scheduled refresh complete",
				"usersScanned", stats.UsersScanned, "refreshed", stats.Refreshed)
		}
	}
}
