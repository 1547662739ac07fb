package models

const (
	CourierStatusIdle = "idle"
	CourierStatusBusy = "busy"
)

// Courier is a mutable entity: zone drifts with completed deliveries and the
// busy flag tracks the currently assigned order. All mutation goes through
// the registry's MarkBusy/MarkIdle so the invariants stay auditable.
type Courier struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ZoneID string `json:"zone_id"`
	Status string `json:"status"`
	// CurrentOrderID is set only while busy.
	CurrentOrderID string `json:"current_order_id,omitempty"`
	// AvailableAtMs is the simulated instant the courier next becomes idle.
	AvailableAtMs int64 `json:"available_at_ms"`
	// Session is the courier's active work shift, nil before ONLINE.
	Session *Session `json:"-"`
	// Dropped marks a courier force-terminated mid-delivery; they take no
	// further assignments for the rest of the run.
	Dropped bool `json:"dropped"`
}

// Session is one courier work shift, ONLINE through OFFLINE. Closed sessions
// are never reopened.
type Session struct {
	ID        string `json:"id"`
	CourierID string `json:"courier_id"`
	StartMs   int64  `json:"start_ms"`
	// EndMs is set when OFFLINE is emitted.
	EndMs  int64          `json:"end_ms"`
	Closed bool           `json:"closed"`
	Events []CourierEvent `json:"-"`
}
