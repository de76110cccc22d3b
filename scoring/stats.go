package scoring

import (
	"sort"
	"time"
)

// UserStats is the per-user dashboard payload. Longest-activity figures
// bucket by the original category while the km/points figures bucket by the
// effective category; the two views are intentionally independent.
type UserStats struct {
	TotalActivities   int      `json:"totalActivities"`
	TotalKm           float64  `json:"totalKm"`
	WalkKm            float64  `json:"walkKm"`
	RunKm             float64  `json:"runKm"`
	CycleKm           float64  `json:"cycleKm"`
	ActiveDays        int      `json:"activeDays"`
	LongestWalk       *float64 `json:"longestWalk"`
	LongestRun        *float64 `json:"longestRun"`
	LongestCycle      *float64 `json:"longestCycle"`
	TotalPoints       float64  `json:"totalPoints"`
	TeamRank          *int     `json:"teamRank"`
	OverallRank       *int     `json:"overallRank"`
	TotalParticipants int      `json:"totalParticipants"`
}

// ComputeUserStats derives one user's stats from an engine pass.
func ComputeUserStats(userID string, res *Result, loc *time.Location) UserStats {
	ag := res.Aggregates
	stats := UserStats{TotalParticipants: len(ag.Users)}

	me := ag.User(userID)
	if me != nil {
		stats.RunKm = Round1(me.RunKm)
		stats.WalkKm = Round1(me.WalkKm)
		stats.CycleKm = Round1(me.CycleKm)
		stats.TotalKm = Round1(me.RunKm + me.WalkKm + me.CycleKm)
		stats.TotalPoints = Round0(me.Points)
	}

	// Overall rank by points across all participants.
	byPoints := make([]*Totals, len(ag.Users))
	copy(byPoints, ag.Users)
	sort.SliceStable(byPoints, func(i, j int) bool { return byPoints[i].Points > byPoints[j].Points })
	for i, t := range byPoints {
		if t.UserID == userID {
			rank := i + 1
			stats.OverallRank = &rank
			break
		}
	}

	// Rank within the user's own team.
	if me != nil && me.Team != "" {
		members := make([]*Totals, 0)
		for _, t := range ag.Users {
			if t.Team == me.Team {
				members = append(members, t)
			}
		}
		sort.SliceStable(members, func(i, j int) bool { return members[i].Points > members[j].Points })
		for i, t := range members {
			if t.UserID == userID {
				rank := i + 1
				stats.TeamRank = &rank
				break
			}
		}
	}

	days := make(map[string]struct{})
	var longestWalk, longestRun, longestCycle float64
	var hasWalk, hasRun, hasCycle bool
	for _, a := range res.Eligible {
		if a.UserID != userID {
			continue
		}
		stats.TotalActivities++
		days[a.StartTime.In(loc).Format("2006-01-02")] = struct{}{}

		// Longest buckets are raw statistics: runs stay runs even when
		// reclassified for scoring, and a reclassified run also counts
		// as a walk. The buckets are not mutually exclusive.
		km := a.DistanceMeters / 1000
		if a.Category == CategoryWalk || a.DerivedCategory == CategoryReclassifiedWalk {
			hasWalk = true
			if km > longestWalk {
				longestWalk = km
			}
		}
		if a.Category == CategoryRun || a.Category == CategoryTrailRun {
			hasRun = true
			if km > longestRun {
				longestRun = km
			}
		}
		if a.Category == CategoryRide || a.Category == CategoryVirtualRide {
			hasCycle = true
			if km > longestCycle {
				longestCycle = km
			}
		}
	}
	stats.ActiveDays = len(days)
	if hasWalk {
		v := Round1(longestWalk)
		stats.LongestWalk = &v
	}
	if hasRun {
		v := Round1(longestRun)
		stats.LongestRun = &v
	}
	if hasCycle {
		v := Round1(longestCycle)
		stats.LongestCycle = &v
	}
	return stats
}
