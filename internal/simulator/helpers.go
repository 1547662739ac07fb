package simulator

import (
	"math"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

func epochMs(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// randomCoords returns a point near the zone centre, jittered within the
// zone's radius, rounded to six decimal places like a GPS fix.
func randomCoords(zone models.Zone, rng *Rand) (float64, float64) {
	lat := zone.Lat + rng.Uniform(-zone.Radius, zone.Radius)
	lon := zone.Lon + rng.Uniform(-zone.Radius, zone.Radius)
	return round6(lat), round6(lon)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
