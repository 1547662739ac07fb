package factories

import (
	"fmt"
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// RestaurantFactory builds the run's restaurant population. All randomness
// comes from the caller's seeded source so the population is reproducible.
type RestaurantFactory struct {
	rng  *rand.Rand
	fake faker.Faker
}

func NewRestaurantFactory(rng *rand.Rand, fake faker.Faker) *RestaurantFactory {
	return &RestaurantFactory{rng: rng, fake: fake}
}

// CreateRestaurants draws each restaurant's zone by demand weight and its
// schedule profile by the fixed profile probabilities. The prep time mean
// starts from the profile baseline with a small per-restaurant variation,
// floored so sampled durations stay plausible.
func (rf *RestaurantFactory) CreateRestaurants(n int, zones []models.Zone) []*models.Restaurant {
	zoneWeights := make([]float64, len(zones))
	profileWeights := make([]float64, len(models.RestaurantProfiles))
	for i, z := range zones {
		zoneWeights[i] = z.Weight
	}
	for i, p := range models.RestaurantProfiles {
		profileWeights[i] = p.Probability
	}

	restaurants := make([]*models.Restaurant, 0, n)
	for i := 0; i < n; i++ {
		zone := zones[weightedIndex(rf.rng, zoneWeights)]
		profile := models.RestaurantProfiles[weightedIndex(rf.rng, profileWeights)]

		prepMean := profile.PrepMeanSec * (0.9 + rf.rng.Float64()*0.2)
		if prepMean < 300 {
			prepMean = 300
		}

		restaurants = append(restaurants, &models.Restaurant{
			ID:          fmt.Sprintf("rest_%03d", i+1),
			Name:        rf.fake.Company().Name(),
			ZoneID:      zone.ID,
			Profile:     profile.Name,
			OpenRanges:  profile.OpenRanges,
			PrepMeanSec: prepMean,
			PrepStdSec:  profile.PrepStdSec,
		})
	}
	return restaurants
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}
