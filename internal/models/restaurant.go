package models

// HourRange is a half-open [Start, End) opening interval in hours of day.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// RestaurantProfile fixes a restaurant's schedule shape and the baseline of
// its prep time distribution.
type RestaurantProfile struct {
	Name        string
	OpenRanges  []HourRange
	Probability float64
	PrepMeanSec float64
	PrepStdSec  float64
}

// Profile mix: half the city is open all day, dinner-only places open late
// and take longer to prepare.
var RestaurantProfiles = []RestaurantProfile{
	{"all_day", []HourRange{{10, 23}}, 0.50, 900, 300},
	{"lunch_dinner", []HourRange{{12, 15}, {19, 23}}, 0.30, 720, 240},
	{"dinner_only", []HourRange{{18, 23}}, 0.20, 1200, 420},
}

// Restaurant profile and prep distribution parameters are drawn once at
// creation and fixed for the run.
type Restaurant struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ZoneID      string      `json:"zone_id"`
	Profile     string      `json:"profile"`
	OpenRanges  []HourRange `json:"open_ranges"`
	PrepMeanSec float64     `json:"prep_mean_sec"`
	PrepStdSec  float64     `json:"prep_std_sec"`
}

// IsOpenAt reports whether the restaurant accepts orders at the given hour.
func (r *Restaurant) IsOpenAt(hour int) bool {
	for _, rng := range r.OpenRanges {
		if hour >= rng.Start && hour < rng.End {
			return true
		}
	}
	return false
}
