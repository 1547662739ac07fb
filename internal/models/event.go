package models

// Feed names double as output topics and file basenames.
const (
	FeedOrderEvents   = "order_events"
	FeedCourierEvents = "courier_events"
)

// Order lifecycle event types.
const (
	OrderEventPlaced    = "ORDER_PLACED"
	OrderEventAssigned  = "COURIER_ASSIGNED"
	OrderEventPickedUp  = "PICKED_UP"
	OrderEventDelivered = "DELIVERED"
	OrderEventCancelled = "CANCELLED"
)

// Courier status event types.
const (
	CourierEventOnline     = "ONLINE"
	CourierEventAvailable  = "AVAILABLE"
	CourierEventPickingUp  = "PICKING_UP"
	CourierEventDelivering = "DELIVERING"
	CourierEventOffline    = "OFFLINE"
)

// EventTypeUnknown is the explicit default symbol for the event type and
// cancellation reason enumerations, so consumers with an older schema can
// still decode records produced by a newer generator.
const EventTypeUnknown = "UNKNOWN"

// OrderEvent is one record of the order lifecycle feed. Timestamps are epoch
// milliseconds; Timestamp is the simulated event time, ProcessingTimestamp
// the simulated ingestion time (later, except for injected late events).
type OrderEvent struct {
	EventID             string   `json:"event_id" parquet:"name=event_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID             string   `json:"order_id" parquet:"name=order_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	EventType           string   `json:"event_type" parquet:"name=event_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp           int64    `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	ProcessingTimestamp int64    `json:"processing_timestamp" parquet:"name=processing_timestamp,type=INT64"`
	CustomerID          string   `json:"customer_id" parquet:"name=customer_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	RestaurantID        string   `json:"restaurant_id" parquet:"name=restaurant_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CourierID           *string  `json:"courier_id" parquet:"name=courier_id,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	ZoneID              string   `json:"zone_id" parquet:"name=zone_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderValue          *float64 `json:"order_value" parquet:"name=order_value,type=DOUBLE,repetitiontype=OPTIONAL"`
	PromoApplied        bool     `json:"promo_applied" parquet:"name=promo_applied,type=BOOLEAN"`
	CancellationReason  *string  `json:"cancellation_reason" parquet:"name=cancellation_reason,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	IsDuplicate         bool     `json:"is_duplicate" parquet:"name=is_duplicate,type=BOOLEAN"`
	AppVersion          string   `json:"app_version" parquet:"name=app_version,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// CourierEvent is one record of the courier status feed.
type CourierEvent struct {
	EventID             string  `json:"event_id" parquet:"name=event_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CourierID           string  `json:"courier_id" parquet:"name=courier_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	EventType           string  `json:"event_type" parquet:"name=event_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp           int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	ProcessingTimestamp int64   `json:"processing_timestamp" parquet:"name=processing_timestamp,type=INT64"`
	ZoneID              string  `json:"zone_id" parquet:"name=zone_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Latitude            float64 `json:"latitude" parquet:"name=latitude,type=DOUBLE"`
	Longitude           float64 `json:"longitude" parquet:"name=longitude,type=DOUBLE"`
	OrderID             *string `json:"order_id" parquet:"name=order_id,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	SessionID           string  `json:"session_id" parquet:"name=session_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	IsDuplicate         bool    `json:"is_duplicate" parquet:"name=is_duplicate,type=BOOLEAN"`
	AppVersion          string  `json:"app_version" parquet:"name=app_version,type=BYTE_ARRAY,convertedtype=UTF8"`
}
