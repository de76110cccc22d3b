package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReclassificationBoundary(t *testing.T) {
	// 5 km in 2550 s is exactly 8.5 min/km.
	slow := Activity{Category: CategoryRun, DistanceMeters: 5000, MovingSeconds: 2550}
	assert.Equal(t, CategoryReclassifiedWalk, Classify(slow))

	// One second faster stays a run.
	fast := Activity{Category: CategoryRun, DistanceMeters: 5000, MovingSeconds: 2549}
	assert.Equal(t, CategoryRun, Classify(fast))
}

func TestClassifyOnlyRunsReclassified(t *testing.T) {
	// Absurdly slow ride and walk are left alone.
	ride := Activity{Category: CategoryRide, DistanceMeters: 1000, MovingSeconds: 7200}
	assert.Equal(t, CategoryRide, Classify(ride))

	walk := Activity{Category: CategoryWalk, DistanceMeters: 1000, MovingSeconds: 7200}
	assert.Equal(t, CategoryWalk, Classify(walk))

	trail := Activity{Category: CategoryTrailRun, DistanceMeters: 5000, MovingSeconds: 2550}
	assert.Equal(t, CategoryReclassifiedWalk, Classify(trail))
}

func TestClassifyDerivedCategorySticky(t *testing.T) {
	// A persisted reclassification survives even if the raw numbers would
	// now classify differently.
	a := Activity{
		Category:        CategoryRun,
		DerivedCategory: CategoryReclassifiedWalk,
		DistanceMeters:  10000,
		MovingSeconds:   3600, // 6.0 min/km, would not reclassify
	}
	assert.Equal(t, CategoryReclassifiedWalk, Classify(a))
}

func TestClassifyZeroDistanceRun(t *testing.T) {
	// Zero distance means effectively infinite pace; reclassified, but it
	// contributes zero score either way.
	a := Activity{Category: CategoryRun, DistanceMeters: 0, MovingSeconds: 600}
	assert.Equal(t, CategoryReclassifiedWalk, Classify(a))
}

func TestClassifyAllSetsDerivedOnlyWhenChanged(t *testing.T) {
	start := time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC)
	acts := []Activity{
		{ID: "slow", Category: CategoryRun, DistanceMeters: 5000, MovingSeconds: 2550, StartTime: start},
		{ID: "fast", Category: CategoryRun, DistanceMeters: 5000, MovingSeconds: 1500, StartTime: start},
		{ID: "ride", Category: CategoryRide, DistanceMeters: 20000, MovingSeconds: 3600, StartTime: start},
	}
	out := ClassifyAll(acts)
	assert.Equal(t, CategoryReclassifiedWalk, out[0].DerivedCategory)
	assert.Equal(t, Category(""), out[1].DerivedCategory)
	assert.Equal(t, Category(""), out[2].DerivedCategory)

	// Input slice is untouched.
	assert.Equal(t, Category(""), acts[0].DerivedCategory)
}
