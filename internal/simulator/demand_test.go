package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestDemandModelScalesPeaksBySurge(t *testing.T) {
	flat := NewDemandModel(testDate, false, 1.0)
	surged := NewDemandModel(testDate, false, 2.5)

	// 13:00 is inside the lunch peak, 16:00 is not.
	assert.InDelta(t, flat.MinuteWeight(13*60)*2.5, surged.MinuteWeight(13*60), 1e-9)
	assert.InDelta(t, flat.MinuteWeight(16*60), surged.MinuteWeight(16*60), 1e-9)
}

func TestDemandModelWeekendCurve(t *testing.T) {
	weekday := NewDemandModel(testDate, false, 1.0)
	weekend := NewDemandModel(testDate, true, 1.0)

	// Weekend baseline at midnight is elevated.
	assert.Greater(t, weekend.MinuteWeight(0), weekday.MinuteWeight(0))
}

func TestSampleArrivalStaysWithinDay(t *testing.T) {
	model := NewDemandModel(testDate, false, 2.5)
	rng := NewRand(42)

	endOfDay := testDate.Add(24 * time.Hour)
	for i := 0; i < 1000; i++ {
		at := model.SampleArrival(rng)
		require.False(t, at.Before(testDate))
		require.True(t, at.Before(endOfDay))
	}
}

func TestSampleArrivalFavoursPeaks(t *testing.T) {
	model := NewDemandModel(testDate, false, 2.5)
	rng := NewRand(42)

	peak, offPeak := 0, 0
	for i := 0; i < 5000; i++ {
		h := model.SampleArrival(rng).Hour()
		if isPeakHour(h) {
			peak++
		}
		if h >= 2 && h < 6 {
			offPeak++
		}
	}
	assert.Greater(t, peak, offPeak*5, "peak hours must dominate the small hours")
}

func TestMinuteWeightBounds(t *testing.T) {
	model := NewDemandModel(testDate, false, 1.0)
	assert.Zero(t, model.MinuteWeight(-1))
	assert.Zero(t, model.MinuteWeight(minutesPerDay))
	assert.NotZero(t, model.MinuteWeight(12*60))
}
