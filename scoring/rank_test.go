package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopRunnersPositiveOnly(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	acts := []Activity{
		act("u1", CategoryRun, 10),
		act("u2", CategoryWalk, 20), // no run distance
		act("u3", CategoryRun, 4),
	}
	ag := Aggregate(acts, testProfiles, w)
	top := TopRunners(ag, 3)
	require.Len(t, top, 2)
	assert.Equal(t, "u1", top[0].UserID)
	assert.Equal(t, "u3", top[1].UserID)
}

func TestTopNTieStability(t *testing.T) {
	w := Weights{Run: 1, Walk: 1, Cycle: 1}
	// u1 and u2 tie on 30 points, u3 trails with 20.
	acts := []Activity{
		act("u1", CategoryRun, 30),
		act("u2", CategoryRun, 30),
		act("u3", CategoryRun, 20),
	}
	ag := Aggregate(acts, testProfiles, w)
	top := TopByPoints(ag, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "u1", top[0].UserID)
	assert.Equal(t, "u2", top[1].UserID)
}

func TestTopTeams(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	acts := []Activity{
		act("u3", CategoryRide, 10), // Pacers first seen, 60 pts
		act("u1", CategoryRun, 10),  // Trailblazers 150 pts
	}
	ag := Aggregate(acts, testProfiles, w)
	top := TopTeams(ag, 3)
	require.Len(t, top, 2)
	assert.Equal(t, "Trailblazers", top[0].Team)
	assert.Equal(t, "Pacers", top[1].Team)
}

func TestTopByGender(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	acts := []Activity{
		act("u1", CategoryRun, 5),  // F
		act("u2", CategoryRun, 20), // M
		act("u3", CategoryRun, 10), // F
	}
	ag := Aggregate(acts, testProfiles, w)
	top := TopByGender(ag, "F", 3)
	require.Len(t, top, 2)
	assert.Equal(t, "u3", top[0].UserID)
	assert.Equal(t, "u1", top[1].UserID)
}

func TestTopNSlicesToRequestedSize(t *testing.T) {
	w := Weights{Run: 1, Walk: 1, Cycle: 1}
	acts := []Activity{
		act("u1", CategoryRun, 3),
		act("u2", CategoryRun, 2),
		act("u3", CategoryRun, 1),
		act("u4", CategoryRun, 4),
	}
	ag := Aggregate(acts, testProfiles, w)
	top := TopRunners(ag, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "u4", top[0].UserID)
}
