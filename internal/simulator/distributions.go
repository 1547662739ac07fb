package simulator

import (
	"math"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// Duration floors. Sampled durations below these are clamped rather than
// propagated; the generator keeps producing data under distributional edge
// cases.
const (
	minPrepSec   = 180
	minTravelSec = 600
	maxTravelSec = 2400
)

// samplePrepTime draws the restaurant's prep time in seconds from its fixed
// per-restaurant normal distribution, clamped to a sane floor.
func samplePrepTime(restaurant *models.Restaurant, rng *Rand) int {
	value := rng.Normal(restaurant.PrepMeanSec, restaurant.PrepStdSec)
	return int(math.Max(minPrepSec, value))
}

// sampleTravelTime draws the pickup-to-delivery duration in seconds,
// parameterised by the distance between the restaurant's zone centre and the
// synthesized delivery point.
func sampleTravelTime(restaurantZone models.Zone, dropLat, dropLon float64, rng *Rand) int {
	dLat := restaurantZone.Lat - dropLat
	dLon := restaurantZone.Lon - dropLon
	distKm := math.Sqrt(dLat*dLat+dLon*dLon) * 111.0

	secs := minTravelSec + distKm*180 + rng.Uniform(0, 600)
	if secs > maxTravelSec {
		secs = maxTravelSec
	}
	return int(secs)
}
