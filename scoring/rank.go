package scoring

import "sort"

// topBy filters users to those with a positive value of the requested
// metric, sorts descending and takes the first n. Ties keep input order.
func topBy(users []*Totals, n int, metric func(*Totals) float64) []*Totals {
	filtered := make([]*Totals, 0, len(users))
	for _, u := range users {
		if metric(u) > 0 {
			filtered = append(filtered, u)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return metric(filtered[i]) > metric(filtered[j])
	})
	if len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// TopRunners returns the top n users by run distance.
func TopRunners(ag *Aggregates, n int) []*Totals {
	return topBy(ag.Users, n, func(t *Totals) float64 { return t.RunKm })
}

// TopWalkers returns the top n users by walk distance.
func TopWalkers(ag *Aggregates, n int) []*Totals {
	return topBy(ag.Users, n, func(t *Totals) float64 { return t.WalkKm })
}

// TopCyclers returns the top n users by cycling distance.
func TopCyclers(ag *Aggregates, n int) []*Totals {
	return topBy(ag.Users, n, func(t *Totals) float64 { return t.CycleKm })
}

// TopByPoints returns the top n users by total points.
func TopByPoints(ag *Aggregates, n int) []*Totals {
	return topBy(ag.Users, n, func(t *Totals) float64 { return t.Points })
}

// TopByGender returns the top n users of the given gender by points, for
// the supplementary leaderboard.
func TopByGender(ag *Aggregates, gender string, n int) []*Totals {
	filtered := make([]*Totals, 0, len(ag.Users))
	for _, u := range ag.Users {
		if u.Gender == gender {
			filtered = append(filtered, u)
		}
	}
	return topBy(filtered, n, func(t *Totals) float64 { return t.Points })
}

// TopTeams returns the top n teams by points. Ties keep input order.
func TopTeams(ag *Aggregates, n int) []*TeamTotals {
	filtered := make([]*TeamTotals, 0, len(ag.Teams))
	for _, t := range ag.Teams {
		if t.Points > 0 {
			filtered = append(filtered, t)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Points > filtered[j].Points
	})
	if len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}
