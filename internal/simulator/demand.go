package simulator

import (
	"time"
)

// Hourly demand weights, index = hour of day. Weekdays show the lunch and
// dinner peaks; weekends are flatter with an elevated baseline.
var weekdayHourWeights = [24]float64{
	0.10, 0.05, 0.05, 0.05, 0.05, 0.10,
	0.20, 0.40, 0.50, 0.50, 0.60, 0.80,
	1.50, 1.80, 1.20, 0.80, 0.70, 0.90,
	1.30, 2.00, 2.00, 1.50, 0.80, 0.30,
}

var weekendHourWeights = [24]float64{
	0.20, 0.10, 0.10, 0.10, 0.10, 0.10,
	0.20, 0.30, 0.50, 0.80, 1.00, 1.20,
	1.60, 1.80, 1.50, 1.20, 1.00, 1.10,
	1.40, 1.90, 1.90, 1.60, 1.00, 0.50,
}

// peakHours are the windows the surge factor scales, and the hours fraud
// clusters and zone surges anchor to.
var peakHours = []int{12, 13, 19, 20, 21}

const minutesPerDay = 24 * 60

func isPeakHour(hour int) bool {
	return (hour >= 12 && hour < 14) || (hour >= 19 && hour < 22)
}

// DemandModel maps minute-of-day to arrival probability density for the
// simulated date. The density is fixed at construction; sampling draws a
// minute bin by weight plus a uniform sub-minute offset.
type DemandModel struct {
	baseDate time.Time
	density  []float64
}

// NewDemandModel builds the 1440-bin density for the date's curve shape,
// with the surge factor applied to the peak windows.
func NewDemandModel(baseDate time.Time, weekend bool, surgeFactor float64) *DemandModel {
	hours := weekdayHourWeights
	if weekend {
		hours = weekendHourWeights
	}

	density := make([]float64, minutesPerDay)
	for m := 0; m < minutesPerDay; m++ {
		hour := m / 60
		w := hours[hour]
		if isPeakHour(hour) {
			w *= surgeFactor
		}
		density[m] = w
	}

	return &DemandModel{baseDate: baseDate, density: density}
}

// SampleArrival draws one order arrival time on the simulated date.
func (d *DemandModel) SampleArrival(rng *Rand) time.Time {
	minute := rng.WeightedIndex(d.density)
	second := rng.IntBetween(0, 59)
	return d.baseDate.Add(time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// MinuteWeight exposes the density of one minute bin, for tests and the
// validation layer.
func (d *DemandModel) MinuteWeight(minute int) float64 {
	if minute < 0 || minute >= minutesPerDay {
		return 0
	}
	return d.density[minute]
}
