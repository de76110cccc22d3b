package scoring

// Totals accumulates one user's distances and points.
type Totals struct {
	UserID  string
	Name    string
	Team    string
	Gender  string
	RunKm   float64
	WalkKm  float64
	CycleKm float64
	Points  float64
}

// TeamTotals accumulates one team's points.
type TeamTotals struct {
	Team   string
	Points float64
}

// Aggregates holds per-user and per-team totals. Users and Teams preserve
// first-seen input order so that ranking ties stay stable.
type Aggregates struct {
	Users  []*Totals
	Teams  []*TeamTotals
	byUser map[string]*Totals
	byTeam map[string]*TeamTotals
}

// User returns the totals for a user, or nil when the user produced no
// eligible activity.
func (ag *Aggregates) User(userID string) *Totals {
	return ag.byUser[userID]
}

// Aggregate sums eligible, classified activities into per-user and per-team
// totals. Scoring buckets by the effective category; categories outside the
// five canonical types contribute nothing. Users without a team appear in
// Users but never in Teams.
func Aggregate(activities []Activity, profiles map[string]Profile, w Weights) *Aggregates {
	ag := &Aggregates{
		byUser: make(map[string]*Totals),
		byTeam: make(map[string]*TeamTotals),
	}
	for _, a := range activities {
		t, ok := ag.byUser[a.UserID]
		if !ok {
			p := profiles[a.UserID]
			t = &Totals{UserID: a.UserID, Name: p.Name, Team: p.Team, Gender: p.Gender}
			ag.byUser[a.UserID] = t
			ag.Users = append(ag.Users, t)
		}

		km := a.DistanceMeters / 1000
		switch a.EffectiveCategory() {
		case CategoryRun, CategoryTrailRun:
			t.RunKm += km
			t.Points += km * w.Run
		case CategoryWalk, CategoryReclassifiedWalk:
			t.WalkKm += km
			t.Points += km * w.Walk
		case CategoryRide, CategoryVirtualRide:
			t.CycleKm += km
			t.Points += km * w.Cycle
		}
	}

	for _, t := range ag.Users {
		if t.Team == "" {
			continue
		}
		tt, ok := ag.byTeam[t.Team]
		if !ok {
			tt = &TeamTotals{Team: t.Team}
			ag.byTeam[t.Team] = tt
			ag.Teams = append(ag.Teams, tt)
		}
		tt.Points += t.Points
	}
	return ag
}
