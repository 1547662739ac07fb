package simulator

import (
	"math"
	"sort"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

const (
	appVersionCurrent = "1.0.0"
	appVersionBeta    = "1.1.0"
	betaVersionProb   = 0.05

	// Assignment retries before falling back to the soonest-to-finish busy
	// courier. Each retry advances simulated time by one minute.
	maxAssignAttempts = 3
	assignRetryMs     = 60_000

	maxRestaurantResamples = 5
	maxTimeResamples       = 3
)

// placement is an order before lifecycle processing: when it was placed,
// by whom, at which restaurant, and any forced behaviour flags set by the
// fraud cluster or zone surge injection.
type placement struct {
	PlacedAt    time.Time
	CustomerID  string
	Restaurant  *models.Restaurant
	OrderValue  float64
	Promo       bool
	ForceCancel bool
	IsFraud     bool
	IsSurge     bool
}

// delivery is one completed or force-terminated assignment, recorded for the
// courier session engine.
type delivery struct {
	OrderID     string
	ZoneID      string
	AssignedMs  int64
	PickupMs    int64
	DeliveredMs int64
	// Dropped marks the courier forced offline during this delivery.
	// DropAfterPickup distinguishes the two orphan states the linked order
	// can be left in (assigned vs picked up), DropMs the offline instant.
	Dropped         bool
	DropAfterPickup bool
	DropMs          int64
}

// OrderEngine turns placements into order lifecycle events, driving courier
// availability through the registry and recording every assignment in the
// delivery log for the session engine.
type OrderEngine struct {
	cfg    *models.Config
	reg    *Registry
	demand *DemandModel
	rng    *Rand
	stats  *Stats

	deliveryLog map[string][]delivery
}

func NewOrderEngine(cfg *models.Config, reg *Registry, demand *DemandModel, rng *Rand, stats *Stats) *OrderEngine {
	return &OrderEngine{
		cfg:         cfg,
		reg:         reg,
		demand:      demand,
		rng:         rng,
		stats:       stats,
		deliveryLog: make(map[string][]delivery),
	}
}

// DeliveriesFor returns the courier's deliveries ordered by assignment time.
func (e *OrderEngine) DeliveriesFor(courierID string) []delivery {
	out := append([]delivery(nil), e.deliveryLog[courierID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AssignedMs < out[j].AssignedMs })
	return out
}

// GeneratePlacements produces the base placement population plus the fraud
// cluster and zone surge injections, sorted chronologically.
func (e *OrderEngine) GeneratePlacements() []placement {
	placements := make([]placement, 0, e.cfg.NumOrders)
	for i := 0; i < e.cfg.NumOrders; i++ {
		placements = append(placements, e.samplePlacement())
	}

	if e.cfg.FraudClusterProb > 0 {
		placements = e.addFraudClusters(placements)
	}
	if e.cfg.ZoneSurgeEvent {
		placements = e.addZoneSurge(placements)
	}

	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].PlacedAt.Before(placements[j].PlacedAt)
	})
	return placements
}

// samplePlacement draws one ordinary order placement. The sampled zone picks
// the restaurant; a closed restaurant is resampled within the zone a bounded
// number of times, then the arrival time itself is resampled, then any open
// restaurant in the city serves as the fallback.
func (e *OrderEngine) samplePlacement() placement {
	var placedAt time.Time
	var restaurant *models.Restaurant

	for attempt := 0; attempt < maxTimeResamples && restaurant == nil; attempt++ {
		placedAt = e.demand.SampleArrival(e.rng)
		hour := placedAt.Hour()
		zone := e.reg.Zones[e.rng.WeightedIndex(e.reg.ZoneWeights())]
		zoneRests := e.reg.RestaurantsIn(zone.ID)
		for i := 0; i < maxRestaurantResamples && len(zoneRests) > 0; i++ {
			candidate := zoneRests[e.rng.Intn(len(zoneRests))]
			if candidate.IsOpenAt(hour) {
				restaurant = candidate
				break
			}
		}
	}
	if restaurant == nil {
		open := e.reg.OpenRestaurantsAt(placedAt.Hour(), "")
		if len(open) == 0 {
			open = e.reg.Restaurants
		}
		restaurant = open[e.rng.Intn(len(open))]
	}

	value := round2(e.rng.Uniform(8.0, 65.0))
	promo := e.rng.Bool(e.cfg.PromoProb)
	if promo {
		value = round2(value * e.rng.Uniform(0.7, 0.9))
	}

	return placement{
		PlacedAt:   placedAt,
		CustomerID: e.reg.Customers[e.rng.Intn(len(e.reg.Customers))].ID,
		Restaurant: restaurant,
		OrderValue: value,
		Promo:      promo,
	}
}

// addFraudClusters appends bursts of force-cancelled placements from a single
// customer, 3 to 5 orders inside a 15 minute window anchored to a peak hour.
func (e *OrderEngine) addFraudClusters(placements []placement) []placement {
	numClusters := int(math.Round(float64(e.cfg.NumOrders) * e.cfg.FraudClusterProb))
	for c := 0; c < numClusters; c++ {
		customer := e.reg.Customers[e.rng.Intn(len(e.reg.Customers))]
		peakHour := peakHours[e.rng.Intn(len(peakHours))]
		baseMinute := e.rng.IntBetween(0, 45)
		clusterSize := e.rng.IntBetween(3, 5)

		for j := 0; j < clusterSize; j++ {
			open := e.reg.OpenRestaurantsAt(peakHour, "")
			if len(open) == 0 {
				open = e.reg.Restaurants
			}
			placedAt := e.cfg.BaseDate.Add(
				time.Duration(peakHour)*time.Hour +
					time.Duration(baseMinute+e.rng.IntBetween(0, 14))*time.Minute +
					time.Duration(e.rng.IntBetween(0, 59))*time.Second)
			placements = append(placements, placement{
				PlacedAt:    placedAt,
				CustomerID:  customer.ID,
				Restaurant:  open[e.rng.Intn(len(open))],
				OrderValue:  round2(e.rng.Uniform(8.0, 65.0)),
				ForceCancel: true,
				IsFraud:     true,
			})
		}
		e.stats.FraudClustersInjected++
	}
	return placements
}

// addZoneSurge appends a burst of orders in one weighted-drawn zone inside a
// 15 minute peak-hour window, roughly five times the zone's normal share.
func (e *OrderEngine) addZoneSurge(placements []placement) []placement {
	zone := e.reg.Zones[e.rng.WeightedIndex(e.reg.ZoneWeights())]
	peakHour := peakHours[e.rng.Intn(len(peakHours))]
	baseMinute := e.rng.IntBetween(0, 45)
	numSurge := e.cfg.NumOrders / 10
	if numSurge < 10 {
		numSurge = 10
	}

	zoneRests := e.reg.RestaurantsIn(zone.ID)
	if len(zoneRests) == 0 {
		zoneRests = e.reg.Restaurants
	}

	e.stats.ZoneSurgeZone = zone.ID
	e.stats.ZoneSurgeHour = peakHour
	e.stats.ZoneSurgeMinute = baseMinute
	e.stats.ZoneSurgeOrders = numSurge

	for i := 0; i < numSurge; i++ {
		value := round2(e.rng.Uniform(8.0, 65.0))
		promo := e.rng.Bool(e.cfg.PromoProb)
		if promo {
			value = round2(value * e.rng.Uniform(0.7, 0.9))
		}
		placedAt := e.cfg.BaseDate.Add(
			time.Duration(peakHour)*time.Hour +
				time.Duration(baseMinute+e.rng.IntBetween(0, 14))*time.Minute +
				time.Duration(e.rng.IntBetween(0, 59))*time.Second)
		placements = append(placements, placement{
			PlacedAt:   placedAt,
			CustomerID: e.reg.Customers[e.rng.Intn(len(e.reg.Customers))].ID,
			Restaurant: zoneRests[e.rng.Intn(len(zoneRests))],
			OrderValue: value,
			Promo:      promo,
			IsSurge:    true,
		})
	}
	return placements
}

// ProcessPlacements runs every placement through the order state machine in
// chronological order and returns the lifecycle events in emission order.
func (e *OrderEngine) ProcessPlacements(placements []placement) []models.OrderEvent {
	var events []models.OrderEvent
	for i := range placements {
		events = e.processOne(&placements[i], events)
	}
	return events
}

func (e *OrderEngine) processOne(pl *placement, events []models.OrderEvent) []models.OrderEvent {
	restaurant := pl.Restaurant
	zoneID := restaurant.ZoneID
	placedMs := epochMs(pl.PlacedAt)

	order := &models.Order{
		ID:           e.rng.UUID(),
		CustomerID:   pl.CustomerID,
		RestaurantID: restaurant.ID,
		ZoneID:       zoneID,
		Value:        pl.OrderValue,
		Promo:        pl.Promo,
		PlacedAtMs:   placedMs,
		Status:       models.OrderStatusPlaced,
	}
	appVersion := appVersionCurrent
	if e.rng.Bool(betaVersionProb) {
		appVersion = appVersionBeta
	}

	e.stats.OrdersPerZone[zoneID]++
	e.stats.OrdersPerHour[pl.PlacedAt.Hour()]++
	e.stats.OrderValues = append(e.stats.OrderValues, pl.OrderValue)
	if pl.IsFraud {
		e.stats.FraudOrderEvents++
	}
	if pl.IsSurge {
		e.stats.SurgeOrderEvents++
	}

	base := models.OrderEvent{
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		RestaurantID: restaurant.ID,
		ZoneID:       zoneID,
		OrderValue:   floatPtr(order.Value),
		PromoApplied: order.Promo,
		AppVersion:   appVersion,
	}
	emit := func(eventType string, tsMs int64, procDelayMs int, mutate func(*models.OrderEvent)) {
		ev := base
		ev.EventID = e.rng.UUID()
		ev.EventType = eventType
		ev.Timestamp = tsMs
		ev.ProcessingTimestamp = tsMs + int64(procDelayMs)
		if mutate != nil {
			mutate(&ev)
		}
		events = append(events, ev)
	}

	emit(models.OrderEventPlaced, placedMs, e.rng.IntBetween(1000, 10000), nil)

	// Every cancellation decision happens at a pre-terminal checkpoint,
	// either straight from placed or after a courier was assigned. Fraud
	// cluster orders always cancel from placed.
	cancelled := pl.ForceCancel || e.rng.Bool(e.cfg.CancelProb)
	cancelFromPlaced := pl.ForceCancel || (cancelled && e.rng.Bool(0.6))

	if cancelled && cancelFromPlaced {
		cancelMs := placedMs + int64(e.rng.IntBetween(30, 300))*1000
		reason := models.CancelReasonCustomer
		if !pl.ForceCancel {
			reason = models.CancellationReasons[e.rng.Intn(len(models.CancellationReasons))]
		}
		order.Status = models.OrderStatusCancelled
		order.CancellationReason = reason
		emit(models.OrderEventCancelled, cancelMs, e.rng.IntBetween(1000, 10000), func(ev *models.OrderEvent) {
			ev.CancellationReason = strPtr(reason)
		})
		return events
	}

	courier := e.assignCourier(zoneID, placedMs)
	if courier == nil {
		// Every courier has been force-dropped; the order cannot progress.
		cancelMs := placedMs + int64(e.rng.IntBetween(30, 300))*1000
		reason := "no_courier_available"
		order.Status = models.OrderStatusCancelled
		order.CancellationReason = reason
		emit(models.OrderEventCancelled, cancelMs, e.rng.IntBetween(1000, 10000), func(ev *models.OrderEvent) {
			ev.CancellationReason = strPtr(reason)
		})
		return events
	}

	assignMs := placedMs + int64(e.rng.IntBetween(30, 120))*1000
	order.Status = models.OrderStatusAssigned
	order.CourierID = courier.ID
	e.reg.MarkBusy(courier, order.ID)
	emit(models.OrderEventAssigned, assignMs, e.rng.IntBetween(1000, 10000), func(ev *models.OrderEvent) {
		ev.CourierID = strPtr(courier.ID)
	})

	if cancelled {
		// Cancellation after assignment releases the courier in place.
		cancelMs := assignMs + int64(e.rng.IntBetween(60, 600))*1000
		reason := models.CancellationReasons[e.rng.Intn(len(models.CancellationReasons))]
		order.Status = models.OrderStatusCancelled
		order.CancellationReason = reason
		emit(models.OrderEventCancelled, cancelMs, e.rng.IntBetween(1000, 10000), func(ev *models.OrderEvent) {
			ev.CourierID = strPtr(courier.ID)
			ev.CancellationReason = strPtr(reason)
		})
		e.reg.MarkIdle(courier, courier.ZoneID, cancelMs)
		return events
	}

	missingPickup := e.rng.Bool(e.cfg.MissingStepProb)
	impossibleDuration := e.rng.Bool(e.cfg.ImpossibleDurationProb)
	forcedOffline := e.rng.Bool(e.cfg.MidDeliveryOfflineProb)
	if missingPickup {
		e.stats.MissingStepOrders++
	}
	if impossibleDuration {
		e.stats.ImpossibleDurationOrders++
	}

	prepSecs := samplePrepTime(restaurant, e.rng)
	pickupMs := assignMs + int64(prepSecs)*1000
	if missingPickup {
		pickupMs = assignMs + int64(e.rng.IntBetween(300, 900))*1000
	}

	if forcedOffline {
		dropAfterPickup := e.rng.Bool(0.5)
		dropMs := assignMs + int64(e.rng.IntBetween(60, 300))*1000
		if dropAfterPickup {
			if !missingPickup {
				order.Status = models.OrderStatusPickedUp
				emit(models.OrderEventPickedUp, pickupMs, e.rng.IntBetween(1000, 10000), func(ev *models.OrderEvent) {
					ev.CourierID = strPtr(courier.ID)
				})
			}
			dropMs = pickupMs + int64(e.rng.IntBetween(60, 300))*1000
		}
		// The order stays orphaned at its last state; the courier takes no
		// further assignments this run.
		courier.Dropped = true
		courier.AvailableAtMs = math.MaxInt64
		e.stats.MidDeliveryOffline++
		e.deliveryLog[courier.ID] = append(e.deliveryLog[courier.ID], delivery{
			OrderID:         order.ID,
			ZoneID:          zoneID,
			AssignedMs:      assignMs,
			PickupMs:        pickupMs,
			Dropped:         true,
			DropAfterPickup: dropAfterPickup,
			DropMs:          dropMs,
		})
		return events
	}

	if !missingPickup {
		order.Status = models.OrderStatusPickedUp
		emit(models.OrderEventPickedUp, pickupMs, e.rng.IntBetween(1000, 10000), func(ev *models.OrderEvent) {
			ev.CourierID = strPtr(courier.ID)
		})
	}

	dropLat, dropLon := randomCoords(e.reg.ZoneByID(zoneID), e.rng)
	deliverySecs := sampleTravelTime(e.reg.ZoneByID(zoneID), dropLat, dropLon, e.rng)
	if impossibleDuration {
		deliverySecs = e.rng.IntBetween(1, 10)
	}
	deliveredMs := pickupMs + int64(deliverySecs)*1000

	order.Status = models.OrderStatusDelivered
	emit(models.OrderEventDelivered, deliveredMs, e.rng.IntBetween(1000, 10000), func(ev *models.OrderEvent) {
		ev.CourierID = strPtr(courier.ID)
	})

	// Courier drifts to the delivery zone and frees up at delivery time.
	e.reg.MarkIdle(courier, zoneID, deliveredMs)
	e.deliveryLog[courier.ID] = append(e.deliveryLog[courier.ID], delivery{
		OrderID:     order.ID,
		ZoneID:      zoneID,
		AssignedMs:  assignMs,
		PickupMs:    pickupMs,
		DeliveredMs: deliveredMs,
	})
	return events
}

// assignCourier prefers the nearest idle courier, retrying with simulated
// one-minute waits, then falls back to the busy courier freeing up soonest.
// Returns nil only when every courier has been dropped.
func (e *OrderEngine) assignCourier(zoneID string, placedMs int64) *models.Courier {
	atMs := placedMs
	for attempt := 0; attempt < maxAssignAttempts; attempt++ {
		if c := e.reg.NearestIdleCourier(zoneID, atMs, e.rng); c != nil {
			return c
		}
		atMs += assignRetryMs
	}
	return e.reg.SoonestAvailableCourier()
}
