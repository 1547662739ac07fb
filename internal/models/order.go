package models

const (
	OrderStatusPlaced    = "placed"
	OrderStatusAssigned  = "assigned"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// CancellationReasons enumerates the reasons attached to ordinary CANCELLED
// events. Fraud cluster cancellations always use CancelReasonCustomer.
var CancellationReasons = []string{
	"customer_cancelled",
	"restaurant_closed",
	"no_courier_available",
	"payment_failed",
	"item_unavailable",
}

const CancelReasonCustomer = "customer_cancelled"

// Order is created on PLACED, mutated by each lifecycle transition and
// immutable once terminal (delivered or cancelled).
type Order struct {
	ID                 string  `json:"id"`
	CustomerID         string  `json:"customer_id"`
	RestaurantID       string  `json:"restaurant_id"`
	ZoneID             string  `json:"zone_id"`
	CourierID          string  `json:"courier_id,omitempty"`
	Value              float64 `json:"value"`
	Promo              bool    `json:"promo"`
	PlacedAtMs         int64   `json:"placed_at_ms"`
	Status             string  `json:"status"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
}

// Terminal reports whether the order reached a terminal state.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}
