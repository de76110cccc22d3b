package initializers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChallengeYAML = `
challenge_start: 2025-10-01T00:00:00+05:30
exclusion_start: 2025-10-16T00:00:00+05:30
freeze_cutoff: 2025-10-29T00:00:00+05:30
competition_end: 2025-10-31T22:00:00+05:30
time_zone: Asia/Kolkata
work_hours:
  start: "07:30"
  end: "15:45"
holidays: ["2025-10-20", "2025-10-21"]
weights:
  run: 15
  walk: 14
  cycle: 6
top_n: 3
`

func writeChallengeFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "challenge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CHALLENGE_CONFIG_FILE", path)
}

func TestLoadChallengeConfig(t *testing.T) {
	writeChallengeFile(t, testChallengeYAML)

	cfg, err := LoadChallengeConfig()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
	assert.True(t, cfg.ChallengeStart.Equal(time.Date(2025, 10, 1, 0, 0, 0, 0, cfg.Location())))

	sc := cfg.ScoringConfig()
	assert.Equal(t, 7, sc.WorkHours.Start.Hour)
	assert.Equal(t, 30, sc.WorkHours.Start.Minute)
	assert.Equal(t, 15, sc.WorkHours.End.Hour)
	assert.Equal(t, 45, sc.WorkHours.End.Minute)
	assert.Contains(t, sc.Holidays, "2025-10-20")
	assert.Equal(t, 15.0, sc.Weights.Run)
	assert.Equal(t, 3, sc.TopN)
}

func TestLoadChallengeConfigWeightOverrides(t *testing.T) {
	writeChallengeFile(t, testChallengeYAML)
	t.Setenv("WEIGHT_RUN", "22")
	t.Setenv("WEIGHT_WALK", "5")

	cfg, err := LoadChallengeConfig()
	require.NoError(t, err)
	assert.Equal(t, 22.0, cfg.Weights.Run)
	assert.Equal(t, 5.0, cfg.Weights.Walk)
	assert.Equal(t, 6.0, cfg.Weights.Cycle)
}

func TestLoadChallengeConfigRejectsMissingWeights(t *testing.T) {
	writeChallengeFile(t, `
challenge_start: 2025-10-01T00:00:00+05:30
exclusion_start: 2025-10-16T00:00:00+05:30
time_zone: Asia/Kolkata
work_hours: {start: "07:30", end: "15:45"}
top_n: 3
`)
	_, err := LoadChallengeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights")
}

func TestLoadChallengeConfigRejectsMalformedWorkHours(t *testing.T) {
	writeChallengeFile(t, `
challenge_start: 2025-10-01T00:00:00+05:30
exclusion_start: 2025-10-16T00:00:00+05:30
time_zone: Asia/Kolkata
work_hours: {start: "0730", end: "15:45"}
weights: {run: 15, walk: 14, cycle: 6}
top_n: 3
`)
	_, err := LoadChallengeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work_hours.start")
}

func TestLoadChallengeConfigRejectsInvertedWorkHours(t *testing.T) {
	writeChallengeFile(t, `
challenge_start: 2025-10-01T00:00:00+05:30
exclusion_start: 2025-10-16T00:00:00+05:30
time_zone: Asia/Kolkata
work_hours: {start: "15:45", end: "07:30"}
weights: {run: 15, walk: 14, cycle: 6}
top_n: 3
`)
	_, err := LoadChallengeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work hours")
}
