package factories

import (
	"math/rand"
	"testing"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

func seededFaker(seed int64) (*rand.Rand, faker.Faker) {
	rng := rand.New(rand.NewSource(seed))
	return rng, faker.NewWithSeed(rng)
}

func testZones(t *testing.T) []models.Zone {
	t.Helper()
	zones, err := models.BuildZones("madrid", 5)
	require.NoError(t, err)
	return zones
}

func TestCreateRestaurants(t *testing.T) {
	rng, fake := seededFaker(42)
	zones := testZones(t)

	restaurants := NewRestaurantFactory(rng, fake).CreateRestaurants(30, zones)
	require.Len(t, restaurants, 30)

	zoneIDs := make(map[string]bool)
	for _, z := range zones {
		zoneIDs[z.ID] = true
	}
	profiles := make(map[string]bool)
	for i, r := range restaurants {
		assert.Regexp(t, `^rest_\d{3}$`, r.ID)
		assert.Equal(t, i+1, mustAtoi(t, r.ID[5:]))
		assert.NotEmpty(t, r.Name)
		assert.True(t, zoneIDs[r.ZoneID], "restaurant %s has unknown zone %s", r.ID, r.ZoneID)
		assert.NotEmpty(t, r.OpenRanges)
		assert.GreaterOrEqual(t, r.PrepMeanSec, 300.0)
		assert.Greater(t, r.PrepStdSec, 0.0)
		profiles[r.Profile] = true
	}
	assert.GreaterOrEqual(t, len(profiles), 2, "30 draws should hit at least two profiles")
}

func TestCreateRestaurantsVariesPrepMeanAroundProfile(t *testing.T) {
	rng, fake := seededFaker(42)
	restaurants := NewRestaurantFactory(rng, fake).CreateRestaurants(100, testZones(t))

	byProfile := make(map[string]models.RestaurantProfile)
	for _, p := range models.RestaurantProfiles {
		byProfile[p.Name] = p
	}
	for _, r := range restaurants {
		profile := byProfile[r.Profile]
		assert.GreaterOrEqual(t, r.PrepMeanSec, profile.PrepMeanSec*0.9-1e-9, "restaurant %s", r.ID)
		assert.LessOrEqual(t, r.PrepMeanSec, profile.PrepMeanSec*1.1+1e-9, "restaurant %s", r.ID)
	}
}

func TestCreateCouriers(t *testing.T) {
	rng, fake := seededFaker(42)
	couriers := NewCourierFactory(rng, fake).CreateCouriers(20, testZones(t))
	require.Len(t, couriers, 20)

	for _, c := range couriers {
		assert.Regexp(t, `^courier_\d{3}$`, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.ZoneID)
		assert.Equal(t, models.CourierStatusIdle, c.Status)
		assert.Zero(t, c.AvailableAtMs)
		assert.False(t, c.Dropped)
	}
}

func TestCreateCustomers(t *testing.T) {
	_, fake := seededFaker(42)
	customers := NewCustomerFactory(fake).CreateCustomers(50)
	require.Len(t, customers, 50)
	assert.Equal(t, "customer_0001", customers[0].ID)
	assert.Equal(t, "customer_0050", customers[49].ID)
}

func TestFactoriesAreDeterministic(t *testing.T) {
	build := func() []*models.Restaurant {
		rng, fake := seededFaker(7)
		return NewRestaurantFactory(rng, fake).CreateRestaurants(20, testZones(t))
	}
	a := build()
	b := build()
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, *a[i], *b[i])
	}
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, r := range s {
		require.True(t, r >= '0' && r <= '9')
		n = n*10 + int(r-'0')
	}
	return n
}
