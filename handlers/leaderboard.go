package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/scoring"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
)

// genderFemale matches the roster's gender column for the supplementary
// women's leaderboard.
const genderFemale = "Female"

type LeaderboardHandler struct {
	activitiesRepo *repository.ActivitiesRepository
	challenge      *initializers.ChallengeConfig
}

func NewLeaderboardHandler(ar *repository.ActivitiesRepository, challenge *initializers.ChallengeConfig) *LeaderboardHandler {
	return &LeaderboardHandler{activitiesRepo: ar, challenge: challenge}
}

// evaluate loads the stored activities in the scoring window and runs one
// engine pass. Ineligible rows are filtered here, never in SQL, so the
// lock and exclusion semantics live in exactly one place.
func (h *LeaderboardHandler) evaluate(now time.Time) (*scoring.Result, error) {
	list, err := h.activitiesRepo.ListSince(listWindowStart(h.challenge, now))
	if err != nil {
		return nil, err
	}
	raws, profiles := toEngineInput(list)
	return scoring.Evaluate(raws, profiles, h.challenge.ScoringConfig(), now)
}

// GetLeaderboard returns the top-N runner/walker/cycler/team boards plus
// the women's board.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	res, err := h.evaluate(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	ag := res.Aggregates
	n := h.challenge.TopN

	resp := types.LeaderboardResponse{
		Runners:  toEntries(scoring.TopRunners(ag, n)),
		Walkers:  toEntries(scoring.TopWalkers(ag, n)),
		Cyclers:  toEntries(scoring.TopCyclers(ag, n)),
		Teams:    toTeamEntries(scoring.TopTeams(ag, n)),
		TopWomen: toEntries(scoring.TopByGender(ag, genderFemale, n)),
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(resp))
}

// GetTeamPerformance returns every team with its member breakdown, ordered
// by team points descending.
func (h *LeaderboardHandler) GetTeamPerformance(c *gin.Context) {
	res, err := h.evaluate(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	c.JSON(http.StatusOK, types.NewSuccessResponse(buildTeamPerformance(res.Aggregates.Users)))
}

// buildTeamPerformance groups per-user totals by team. Ordering uses the
// raw point sums; rounding happens only on the response values so that two
// teams less than half a point apart cannot swap places in display.
func buildTeamPerformance(users []*scoring.Totals) []types.TeamPerformance {
	type teamAcc struct {
		name      string
		rawPoints float64
		members   []*scoring.Totals
	}
	byTeam := make(map[string]*teamAcc)
	var teams []*teamAcc
	for _, u := range users {
		if u.Team == "" {
			continue
		}
		acc, ok := byTeam[u.Team]
		if !ok {
			acc = &teamAcc{name: u.Team}
			byTeam[u.Team] = acc
			teams = append(teams, acc)
		}
		acc.rawPoints += u.Points
		acc.members = append(acc.members, u)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].rawPoints > teams[j].rawPoints
	})

	out := make([]types.TeamPerformance, len(teams))
	for i, acc := range teams {
		sort.SliceStable(acc.members, func(a, b int) bool {
			return acc.members[a].Points > acc.members[b].Points
		})
		tp := types.TeamPerformance{
			TeamName:    acc.name,
			TotalPoints: scoring.Round0(acc.rawPoints),
		}
		for _, u := range acc.members {
			tp.Members = append(tp.Members, types.TeamMember{
				Name:   u.Name,
				Run:    scoring.Round1(u.RunKm),
				Walk:   scoring.Round1(u.WalkKm),
				Cycle:  scoring.Round1(u.CycleKm),
				Points: scoring.Round0(u.Points),
			})
		}
		out[i] = tp
	}
	return out
}

func toEntries(users []*scoring.Totals) []types.LeaderboardEntry {
	entries := make([]types.LeaderboardEntry, len(users))
	for i, u := range users {
		var team *string
		if u.Team != "" {
			t := u.Team
			team = &t
		}
		entries[i] = types.LeaderboardEntry{
			Name:   u.Name,
			Team:   team,
			Run:    scoring.Round1(u.RunKm),
			Walk:   scoring.Round1(u.WalkKm),
			Cycle:  scoring.Round1(u.CycleKm),
			Points: scoring.Round0(u.Points),
		}
	}
	return entries
}

func toTeamEntries(teams []*scoring.TeamTotals) []types.TeamEntry {
	entries := make([]types.TeamEntry, len(teams))
	for i, t := range teams {
		entries[i] = types.TeamEntry{Team: t.Team, Points: scoring.Round0(t.Points)}
	}
	return entries
}
