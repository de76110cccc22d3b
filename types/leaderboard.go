package types

// LeaderboardEntry is one row of an individual leaderboard. Distances are
// rounded to one decimal place, points to whole numbers.
type LeaderboardEntry struct {
	Name   string  `json:"name"`
	Team   *string `json:"team"`
	Run    float64 `json:"run"`
	Walk   float64 `json:"walk"`
	Cycle  float64 `json:"cycle"`
	Points float64 `json:"points"`
}

// TeamEntry is one row of the team leaderboard.
type TeamEntry struct {
	Team   string  `json:"team"`
	Points float64 `json:"points"`
}

// LeaderboardResponse is the /api/leaderboard payload.
type LeaderboardResponse struct {
	Runners  []LeaderboardEntry `json:"runners"`
	Walkers  []LeaderboardEntry `json:"walkers"`
	Cyclers  []LeaderboardEntry `json:"cyclers"`
	Teams    []TeamEntry        `json:"teams"`
	TopWomen []LeaderboardEntry `json:"topWomen,omitempty"`
}

// TeamMember is one member row in the team-performance breakdown.
type TeamMember struct {
	Name   string  `json:"name"`
	Run    float64 `json:"run"`
	Walk   float64 `json:"walk"`
	Cycle  float64 `json:"cycle"`
	Points float64 `json:"points"`
}

// TeamPerformance is one team's block in the /api/team-performance payload.
type TeamPerformance struct {
	TeamName    string       `json:"teamName"`
	TotalPoints float64      `json:"totalPoints"`
	Members     []TeamMember `json:"members"`
}

// RefreshStats summarizes one refresh sweep over connected users.
type RefreshStats struct {
	UsersScanned int `json:"usersScanned"`
	Refreshed    int `json:"refreshed"`
}
