package factories

import (
	"fmt"
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// CourierFactory builds the run's courier fleet, each pinned to an initial
// zone drawn by demand weight and starting idle.
type CourierFactory struct {
	rng  *rand.Rand
	fake faker.Faker
}

func NewCourierFactory(rng *rand.Rand, fake faker.Faker) *CourierFactory {
	return &CourierFactory{rng: rng, fake: fake}
}

func (cf *CourierFactory) CreateCouriers(n int, zones []models.Zone) []*models.Courier {
	zoneWeights := make([]float64, len(zones))
	for i, z := range zones {
		zoneWeights[i] = z.Weight
	}

	couriers := make([]*models.Courier, 0, n)
	for i := 0; i < n; i++ {
		zone := zones[weightedIndex(cf.rng, zoneWeights)]
		couriers = append(couriers, &models.Courier{
			ID:     fmt.Sprintf("courier_%03d", i+1),
			Name:   cf.fake.Person().Name(),
			ZoneID: zone.ID,
			Status: models.CourierStatusIdle,
		})
	}
	return couriers
}
