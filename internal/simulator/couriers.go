package simulator

import (
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// Shift start hours couriers draw from, skewed to the demand peaks.
var shiftStartHours = []int{10, 11, 17, 18, 19}

// CourierEngine replays the delivery log as courier status events, one work
// session per courier per simulated day.
type CourierEngine struct {
	cfg    *models.Config
	reg    *Registry
	orders *OrderEngine
	rng    *Rand
	stats  *Stats
}

func NewCourierEngine(cfg *models.Config, reg *Registry, orders *OrderEngine, rng *Rand, stats *Stats) *CourierEngine {
	return &CourierEngine{cfg: cfg, reg: reg, orders: orders, rng: rng, stats: stats}
}

// GenerateEvents produces every courier's session in courier creation order.
func (e *CourierEngine) GenerateEvents() []models.CourierEvent {
	var events []models.CourierEvent
	for _, c := range e.reg.Couriers {
		events = append(events, e.generateSession(c)...)
	}
	for _, c := range e.reg.Couriers {
		e.stats.CouriersPerZone[c.ZoneID]++
	}
	return events
}

// generateSession walks one courier through
// ONLINE, AVAILABLE, (PICKING_UP, DELIVERING, AVAILABLE)*, OFFLINE. A courier
// force-dropped mid-delivery closes the session with an immediate OFFLINE
// still referencing the orphaned order.
func (e *CourierEngine) generateSession(c *models.Courier) []models.CourierEvent {
	session := &models.Session{ID: e.rng.UUID(), CourierID: c.ID}
	c.Session = session

	appVersion := appVersionCurrent
	if e.rng.Bool(betaVersionProb) {
		appVersion = appVersionBeta
	}

	emit := func(eventType string, tsMs int64, zone models.Zone, orderID *string) {
		lat, lon := randomCoords(zone, e.rng)
		session.Events = append(session.Events, models.CourierEvent{
			EventID:             e.rng.UUID(),
			CourierID:           c.ID,
			EventType:           eventType,
			Timestamp:           tsMs,
			ProcessingTimestamp: tsMs + int64(e.rng.IntBetween(1000, 5000)),
			ZoneID:              zone.ID,
			Latitude:            lat,
			Longitude:           lon,
			OrderID:             orderID,
			SessionID:           session.ID,
			AppVersion:          appVersion,
		})
	}

	zone := e.reg.ZoneByID(c.ZoneID)
	startHour := shiftStartHours[e.rng.Intn(len(shiftStartHours))]
	onlineMs := epochMs(e.cfg.BaseDate) +
		int64(startHour)*3_600_000 +
		int64(e.rng.IntBetween(0, 59))*60_000 +
		int64(e.rng.IntBetween(0, 59))*1000
	session.StartMs = onlineMs

	emit(models.CourierEventOnline, onlineMs, zone, nil)
	emit(models.CourierEventAvailable, onlineMs+int64(e.rng.IntBetween(10, 60))*1000, zone, nil)

	for _, d := range e.orders.DeliveriesFor(c.ID) {
		dzone := e.reg.ZoneByID(d.ZoneID)

		if d.Dropped && !d.DropAfterPickup {
			emit(models.CourierEventOffline, d.DropMs, dzone, strPtr(d.OrderID))
			e.closeSession(session, d.DropMs)
			return session.Events
		}

		emit(models.CourierEventPickingUp, d.PickupMs, dzone, strPtr(d.OrderID))

		if d.Dropped {
			midMs := (d.PickupMs + d.DropMs) / 2
			emit(models.CourierEventDelivering, midMs, dzone, strPtr(d.OrderID))
			emit(models.CourierEventOffline, d.DropMs, dzone, strPtr(d.OrderID))
			e.closeSession(session, d.DropMs)
			return session.Events
		}

		midMs := (d.PickupMs + d.DeliveredMs) / 2
		emit(models.CourierEventDelivering, midMs, dzone, strPtr(d.OrderID))
		emit(models.CourierEventAvailable, d.DeliveredMs+int64(e.rng.IntBetween(30, 120))*1000, dzone, nil)
	}

	lastMs := onlineMs
	for _, ev := range session.Events {
		if ev.Timestamp > lastMs {
			lastMs = ev.Timestamp
		}
	}
	offlineMs := lastMs + int64(e.rng.IntBetween(5, 30))*60_000
	emit(models.CourierEventOffline, offlineMs, e.reg.ZoneByID(c.ZoneID), nil)
	e.closeSession(session, offlineMs)
	return session.Events
}

func (e *CourierEngine) closeSession(s *models.Session, endMs int64) {
	s.EndMs = endMs
	s.Closed = true
}
