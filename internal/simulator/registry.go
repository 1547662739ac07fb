package simulator

import (
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// Registry holds every mutable entity of a run and funnels all courier
// state transitions through MarkBusy/MarkIdle. Entities live in slices so
// iteration order is fixed; maps are used for lookup only.
type Registry struct {
	Zones       []models.Zone
	Restaurants []*models.Restaurant
	Couriers    []*models.Courier
	Customers   []models.Customer

	zoneByID          map[string]int
	restaurantsByZone map[string][]*models.Restaurant

	// zoneRanking[zoneID] lists zone indices ordered by distance from that
	// zone, nearest (itself) first.
	zoneRanking map[string][]int
}

// NewRegistry indexes the entities and precomputes the zone distance
// rankings used by courier assignment.
func NewRegistry(zones []models.Zone, restaurants []*models.Restaurant, couriers []*models.Courier, customers []models.Customer) *Registry {
	r := &Registry{
		Zones:             zones,
		Restaurants:       restaurants,
		Couriers:          couriers,
		Customers:         customers,
		zoneByID:          make(map[string]int, len(zones)),
		restaurantsByZone: make(map[string][]*models.Restaurant),
		zoneRanking:       make(map[string][]int, len(zones)),
	}

	for i, z := range zones {
		r.zoneByID[z.ID] = i
	}
	for _, rest := range restaurants {
		r.restaurantsByZone[rest.ZoneID] = append(r.restaurantsByZone[rest.ZoneID], rest)
	}

	for i, z := range zones {
		ranking := make([]int, len(zones))
		for j := range zones {
			ranking[j] = j
		}
		// insertion sort by distance keeps ties in preset order
		for a := 1; a < len(ranking); a++ {
			for b := a; b > 0; b-- {
				da := models.ZoneDistance(z, zones[ranking[b]])
				db := models.ZoneDistance(z, zones[ranking[b-1]])
				if da < db {
					ranking[b], ranking[b-1] = ranking[b-1], ranking[b]
				} else {
					break
				}
			}
		}
		r.zoneRanking[zones[i].ID] = ranking
	}

	return r
}

// ZoneByID returns the zone record, falling back to the first zone for an
// unknown id so callers never dereference a missing zone.
func (r *Registry) ZoneByID(id string) models.Zone {
	if i, ok := r.zoneByID[id]; ok {
		return r.Zones[i]
	}
	return r.Zones[0]
}

// ZoneWeights returns the demand weights in zone order.
func (r *Registry) ZoneWeights() []float64 {
	weights := make([]float64, len(r.Zones))
	for i, z := range r.Zones {
		weights[i] = z.Weight
	}
	return weights
}

// RestaurantsIn returns the restaurants of a zone in creation order.
func (r *Registry) RestaurantsIn(zoneID string) []*models.Restaurant {
	return r.restaurantsByZone[zoneID]
}

// OpenRestaurantsAt returns the restaurants of a zone open at the given
// hour. A nil zoneID ("") searches the whole city.
func (r *Registry) OpenRestaurantsAt(hour int, zoneID string) []*models.Restaurant {
	pool := r.Restaurants
	if zoneID != "" {
		pool = r.restaurantsByZone[zoneID]
	}
	var open []*models.Restaurant
	for _, rest := range pool {
		if rest.IsOpenAt(hour) {
			open = append(open, rest)
		}
	}
	return open
}

// IdleCouriersIn returns the couriers idle in the zone at the simulated
// instant, in creation order.
func (r *Registry) IdleCouriersIn(zoneID string, atMs int64) []*models.Courier {
	var idle []*models.Courier
	for _, c := range r.Couriers {
		if c.Dropped || c.ZoneID != zoneID {
			continue
		}
		if c.AvailableAtMs <= atMs {
			idle = append(idle, c)
		}
	}
	return idle
}

// NearestIdleCourier prefers an idle courier in the order's own zone, then
// expands outward along the zone distance ranking. Returns nil when nobody
// is idle anywhere; the caller decides the fallback.
func (r *Registry) NearestIdleCourier(zoneID string, atMs int64, rng *Rand) *models.Courier {
	ranking, ok := r.zoneRanking[zoneID]
	if !ok {
		ranking = r.zoneRanking[r.Zones[0].ID]
	}
	for _, zi := range ranking {
		idle := r.IdleCouriersIn(r.Zones[zi].ID, atMs)
		if len(idle) > 0 {
			return idle[rng.Intn(len(idle))]
		}
	}
	return nil
}

// SoonestAvailableCourier returns the busy courier that frees up first, the
// documented fallback when nobody is idle anywhere. Dropped couriers never
// qualify. Returns nil only when every courier has been dropped.
func (r *Registry) SoonestAvailableCourier() *models.Courier {
	var best *models.Courier
	for _, c := range r.Couriers {
		if c.Dropped {
			continue
		}
		if best == nil || c.AvailableAtMs < best.AvailableAtMs {
			best = c
		}
	}
	return best
}

// MarkBusy transitions a courier to busy for the given order.
func (r *Registry) MarkBusy(c *models.Courier, orderID string) {
	c.Status = models.CourierStatusBusy
	c.CurrentOrderID = orderID
}

// MarkIdle releases a courier into newZone at the simulated instant. A
// courier finishing a delivery stays in the delivery zone; it never resets
// to its home zone.
func (r *Registry) MarkIdle(c *models.Courier, newZoneID string, atMs int64) {
	c.Status = models.CourierStatusIdle
	c.CurrentOrderID = ""
	c.ZoneID = newZoneID
	c.AvailableAtMs = atMs
}
