package simulator

import (
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// EdgeCaseInjector applies the post-generation anomaly transformations,
// duplication and lateness, in a fixed draw order over the emission-ordered
// event population. The other anomaly classes (missing step, impossible
// duration, mid-delivery offline, fraud clusters, zone surge) are injected
// inside the engines; this layer only adds the post-hoc ones and carries the
// shared tallies.
type EdgeCaseInjector struct {
	cfg   *models.Config
	rng   *Rand
	stats *Stats
}

func NewEdgeCaseInjector(cfg *models.Config, rng *Rand, stats *Stats) *EdgeCaseInjector {
	return &EdgeCaseInjector{cfg: cfg, rng: rng, stats: stats}
}

// InjectOrderDuplicates emits a copy of a sampled fraction of order events,
// adjacent to the original, with a fresh event id, is_duplicate set, and a
// slightly later processing timestamp.
func (inj *EdgeCaseInjector) InjectOrderDuplicates(events []models.OrderEvent) []models.OrderEvent {
	if inj.cfg.DuplicateProb <= 0 || len(events) == 0 {
		return events
	}
	out := make([]models.OrderEvent, 0, len(events))
	for _, e := range events {
		out = append(out, e)
		if inj.rng.Bool(inj.cfg.DuplicateProb) {
			dup := e
			dup.EventID = inj.rng.UUID()
			dup.IsDuplicate = true
			dup.ProcessingTimestamp = e.ProcessingTimestamp + int64(inj.rng.IntBetween(100, 5000))
			out = append(out, dup)
			inj.stats.DuplicatesInjectedOrder++
		}
	}
	return out
}

// InjectCourierDuplicates is the courier feed counterpart of
// InjectOrderDuplicates.
func (inj *EdgeCaseInjector) InjectCourierDuplicates(events []models.CourierEvent) []models.CourierEvent {
	if inj.cfg.DuplicateProb <= 0 || len(events) == 0 {
		return events
	}
	out := make([]models.CourierEvent, 0, len(events))
	for _, e := range events {
		out = append(out, e)
		if inj.rng.Bool(inj.cfg.DuplicateProb) {
			dup := e
			dup.EventID = inj.rng.UUID()
			dup.IsDuplicate = true
			dup.ProcessingTimestamp = e.ProcessingTimestamp + int64(inj.rng.IntBetween(100, 5000))
			out = append(out, dup)
			inj.stats.DuplicatesInjectedCourier++
		}
	}
	return out
}

// InjectOrderLateness backdates the event timestamp of a sampled fraction of
// order events by 5 to 15 minutes while leaving the processing timestamp at
// the ingestion instant. ORDER_PLACED never arrives late.
func (inj *EdgeCaseInjector) InjectOrderLateness(events []models.OrderEvent) {
	if inj.cfg.LateProb <= 0 {
		return
	}
	for i := range events {
		if events[i].EventType == models.OrderEventPlaced {
			continue
		}
		if inj.rng.Bool(inj.cfg.LateProb) {
			events[i].Timestamp -= int64(inj.rng.IntBetween(300_000, 900_000))
			inj.stats.LateEventsOrder++
		}
	}
}

// InjectCourierLateness backdates a sampled fraction of courier events.
// ONLINE never arrives late.
func (inj *EdgeCaseInjector) InjectCourierLateness(events []models.CourierEvent) {
	if inj.cfg.LateProb <= 0 {
		return
	}
	for i := range events {
		if events[i].EventType == models.CourierEventOnline {
			continue
		}
		if inj.rng.Bool(inj.cfg.LateProb) {
			events[i].Timestamp -= int64(inj.rng.IntBetween(300_000, 900_000))
			inj.stats.LateEventsCourier++
		}
	}
}
