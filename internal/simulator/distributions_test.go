package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

func TestSamplePrepTimeClampsToMinimum(t *testing.T) {
	rng := NewRand(1)
	// A pathological distribution keeps sampling below the floor.
	r := &models.Restaurant{PrepMeanSec: -5000, PrepStdSec: 1}
	for i := 0; i < 100; i++ {
		assert.Equal(t, minPrepSec, samplePrepTime(r, rng))
	}
}

func TestSamplePrepTimeTracksMean(t *testing.T) {
	rng := NewRand(1)
	r := &models.Restaurant{PrepMeanSec: 900, PrepStdSec: 300}
	sum := 0
	const n = 5000
	for i := 0; i < n; i++ {
		sum += samplePrepTime(r, rng)
	}
	assert.InDelta(t, 900, float64(sum)/n, 30)
}

func TestSampleTravelTimeBounds(t *testing.T) {
	rng := NewRand(1)
	zone := models.Zone{Lat: 40.416, Lon: -3.703, Radius: 0.02}
	for i := 0; i < 1000; i++ {
		lat, lon := randomCoords(zone, rng)
		secs := sampleTravelTime(zone, lat, lon, rng)
		assert.GreaterOrEqual(t, secs, minTravelSec)
		assert.LessOrEqual(t, secs, maxTravelSec)
	}
}
