package models

import (
	"fmt"
	"math"
)

// Zone is a fixed geographic partition of the simulated city. Weight is the
// zone's share of total demand; weights across a run sum to 1.
type Zone struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"` // degrees, jitter bound for coordinates
	Weight float64 `json:"weight"`
}

type zonePreset struct {
	name   string
	lat    float64
	lon    float64
	radius float64
	weight float64
}

// City presets: centre-type zone carries ~30% of demand, peripheral ~10%.
var cityPresets = map[string][]zonePreset{
	"madrid": {
		{"zone_center", 40.416, -3.703, 0.020, 0.30},
		{"zone_north", 40.440, -3.690, 0.030, 0.25},
		{"zone_south", 40.390, -3.700, 0.030, 0.20},
		{"zone_east", 40.420, -3.660, 0.030, 0.15},
		{"zone_west", 40.415, -3.740, 0.030, 0.10},
	},
	"barcelona": {
		{"zone_eixample", 41.390, 2.165, 0.020, 0.30},
		{"zone_gothic", 41.382, 2.177, 0.020, 0.25},
		{"zone_gracia", 41.403, 2.156, 0.020, 0.20},
		{"zone_born", 41.385, 2.183, 0.020, 0.15},
		{"zone_sants", 41.375, 2.133, 0.030, 0.10},
	},
	"london": {
		{"zone_soho", 51.513, -0.137, 0.020, 0.30},
		{"zone_shoreditch", 51.524, -0.079, 0.020, 0.25},
		{"zone_camden", 51.539, -0.143, 0.020, 0.20},
		{"zone_southbank", 51.506, -0.115, 0.020, 0.15},
		{"zone_kensington", 51.502, -0.192, 0.020, 0.10},
	},
}

// CityNames lists the supported city presets.
func CityNames() []string {
	return []string{"barcelona", "london", "madrid"}
}

// BuildZones constructs the zone set for a city preset, truncated to
// numZones and with demand weights re-normalised to sum to 1.
func BuildZones(city string, numZones int) ([]Zone, error) {
	presets, ok := cityPresets[city]
	if !ok {
		return nil, fmt.Errorf("unknown city preset: %s", city)
	}
	if numZones < 1 || numZones > len(presets) {
		return nil, fmt.Errorf("num_zones must be between 1 and %d, got %d", len(presets), numZones)
	}
	presets = presets[:numZones]

	total := 0.0
	for _, p := range presets {
		total += p.weight
	}

	zones := make([]Zone, len(presets))
	for i, p := range presets {
		zones[i] = Zone{
			ID:     p.name,
			Name:   p.name,
			Lat:    p.lat,
			Lon:    p.lon,
			Radius: p.radius,
			Weight: p.weight / total,
		}
	}
	return zones, nil
}

// ZoneDistance is the Euclidean distance between zone centres in degrees.
// Zones span a single city, so the flat-earth approximation is fine here.
func ZoneDistance(a, b Zone) float64 {
	return math.Sqrt((a.Lat-b.Lat)*(a.Lat-b.Lat) + (a.Lon-b.Lon)*(a.Lon-b.Lon))
}

// ZoneDistanceKm converts the degree distance to an approximate kilometre
// figure used by the travel time model.
func ZoneDistanceKm(a, b Zone) float64 {
	return ZoneDistance(a, b) * 111.0
}
