package simulator

import (
	"fmt"
	"sort"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// Stats accumulates every injected anomaly and distribution tally during a
// run. Nothing is ever dropped without being counted here.
type Stats struct {
	OrdersPerZone   map[string]int
	OrdersPerHour   map[int]int
	CouriersPerZone map[string]int
	OrderValues     []float64

	DuplicatesInjectedOrder   int
	DuplicatesInjectedCourier int
	LateEventsOrder           int
	LateEventsCourier         int
	MissingStepOrders         int
	ImpossibleDurationOrders  int
	MidDeliveryOffline        int
	FraudClustersInjected     int
	FraudOrderEvents          int
	SurgeOrderEvents          int

	ZoneSurgeZone   string
	ZoneSurgeHour   int
	ZoneSurgeMinute int
	ZoneSurgeOrders int
}

func NewStats() *Stats {
	return &Stats{
		OrdersPerZone:   make(map[string]int),
		OrdersPerHour:   make(map[int]int),
		CouriersPerZone: make(map[string]int),
	}
}

// CountPct is a count with its share of the containing population.
type CountPct struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// OrderValueStats summarises the monetary order values of a run.
type OrderValueStats struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ZoneSurgeReport describes the injected surge window, nil when disabled.
type ZoneSurgeReport struct {
	Zone        string `json:"zone"`
	Hour        int    `json:"hour"`
	MinuteStart int    `json:"minute_start"`
	ExtraOrders int    `json:"extra_orders"`
}

// ValidationReport is the read-only aggregation written alongside the event
// files, consumed by downstream pipeline tests to sanity-check their input.
type ValidationReport struct {
	TotalOrderEvents   int `json:"total_order_events"`
	TotalCourierEvents int `json:"total_courier_events"`

	OrderEventBreakdown   map[string]CountPct `json:"order_event_breakdown"`
	CourierEventBreakdown map[string]CountPct `json:"courier_event_breakdown"`

	DuplicatesInjected       map[string]int `json:"duplicates_injected"`
	LateEventsInjected       map[string]int `json:"late_events_injected"`
	MissingStepOrders        int            `json:"missing_step_orders"`
	ImpossibleDurationOrders int            `json:"impossible_duration_orders"`
	MidDeliveryOffline       int            `json:"mid_delivery_offline_couriers"`
	FraudClustersInjected    int            `json:"fraud_clusters_injected"`
	FraudClusterOrderEvents  int            `json:"fraud_cluster_order_events"`

	ZoneSurge *ZoneSurgeReport `json:"zone_surge"`

	OrderValueStats OrderValueStats     `json:"order_value_stats"`
	OrdersPerZone   map[string]CountPct `json:"orders_per_zone"`
	CouriersPerZone map[string]int      `json:"couriers_per_zone"`
	OrdersPerHour   map[string]int      `json:"orders_per_hour"`

	DataQualityWarnings []string       `json:"data_quality_warnings"`
	Config              *models.Config `json:"config"`
}

// BuildReport aggregates the final event population and run statistics.
func BuildReport(orderEvents []models.OrderEvent, courierEvents []models.CourierEvent, stats *Stats, cfg *models.Config) *ValidationReport {
	report := &ValidationReport{
		TotalOrderEvents:         len(orderEvents),
		TotalCourierEvents:       len(courierEvents),
		MissingStepOrders:        stats.MissingStepOrders,
		ImpossibleDurationOrders: stats.ImpossibleDurationOrders,
		MidDeliveryOffline:       stats.MidDeliveryOffline,
		FraudClustersInjected:    stats.FraudClustersInjected,
		FraudClusterOrderEvents:  stats.FraudOrderEvents,
		Config:                   cfg,
		DuplicatesInjected: map[string]int{
			"order":   stats.DuplicatesInjectedOrder,
			"courier": stats.DuplicatesInjectedCourier,
		},
		LateEventsInjected: map[string]int{
			"order":   stats.LateEventsOrder,
			"courier": stats.LateEventsCourier,
		},
	}

	orderTypes := make(map[string]int)
	for _, e := range orderEvents {
		orderTypes[e.EventType]++
	}
	report.OrderEventBreakdown = breakdown(orderTypes, len(orderEvents))

	courierTypes := make(map[string]int)
	for _, e := range courierEvents {
		courierTypes[e.EventType]++
	}
	report.CourierEventBreakdown = breakdown(courierTypes, len(courierEvents))

	if stats.ZoneSurgeOrders > 0 {
		report.ZoneSurge = &ZoneSurgeReport{
			Zone:        stats.ZoneSurgeZone,
			Hour:        stats.ZoneSurgeHour,
			MinuteStart: stats.ZoneSurgeMinute,
			ExtraOrders: stats.ZoneSurgeOrders,
		}
	}

	if len(stats.OrderValues) > 0 {
		minV, maxV, sum := stats.OrderValues[0], stats.OrderValues[0], 0.0
		for _, v := range stats.OrderValues {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
			sum += v
		}
		report.OrderValueStats = OrderValueStats{
			Avg: round2(sum / float64(len(stats.OrderValues))),
			Min: round2(minV),
			Max: round2(maxV),
		}
	}

	totalOrders := 0
	for _, v := range stats.OrdersPerZone {
		totalOrders += v
	}
	report.OrdersPerZone = breakdown(stats.OrdersPerZone, totalOrders)

	report.CouriersPerZone = make(map[string]int, len(stats.CouriersPerZone))
	for k, v := range stats.CouriersPerZone {
		report.CouriersPerZone[k] = v
	}

	report.OrdersPerHour = make(map[string]int, 24)
	for h := 0; h < 24; h++ {
		report.OrdersPerHour[fmt.Sprintf("%d", h)] = stats.OrdersPerHour[h]
	}

	report.DataQualityWarnings = qualityWarnings(orderTypes, stats, cfg)
	return report
}

func breakdown(counts map[string]int, total int) map[string]CountPct {
	if total < 1 {
		total = 1
	}
	out := make(map[string]CountPct, len(counts))
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out[k] = CountPct{
			Count: counts[k],
			Pct:   round2(float64(counts[k]) / float64(total) * 100),
		}
	}
	return out
}

func qualityWarnings(orderTypes map[string]int, stats *Stats, cfg *models.Config) []string {
	warnings := []string{}
	placed := orderTypes[models.OrderEventPlaced]
	cancelled := orderTypes[models.OrderEventCancelled]
	if placed > 0 && float64(cancelled)/float64(placed) > 0.25 {
		warnings = append(warnings, fmt.Sprintf(
			"High cancellation rate: %.1f%%", float64(cancelled)/float64(placed)*100))
	}
	if stats.DuplicatesInjectedOrder+stats.DuplicatesInjectedCourier == 0 && cfg.DuplicateProb > 0 {
		warnings = append(warnings, "No duplicates were injected despite duplicate_prob > 0")
	}
	return warnings
}
