package simulator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// maxStreamSleep caps the pacing delay so overnight gaps in the simulated
// day do not hang the stream.
const maxStreamSleep = 5 * time.Second

// Streamed events carry their feed name so a consumer reading the merged
// stream can route records without inspecting the payload shape.
type streamedOrderEvent struct {
	models.OrderEvent
	Feed string `json:"_feed"`
}

type streamedCourierEvent struct {
	models.CourierEvent
	Feed string `json:"_feed"`
}

// TimelineEmitter merges both feeds by processing timestamp and replays them
// against an output destination, pacing by the processing-time gap between
// consecutive events divided by the speed factor.
type TimelineEmitter struct {
	speedFactor float64
	sleep       func(time.Duration)
}

// NewTimelineEmitter builds an emitter. speedFactor N means one real second
// covers N simulated seconds.
func NewTimelineEmitter(speedFactor float64) *TimelineEmitter {
	return &TimelineEmitter{speedFactor: speedFactor, sleep: time.Sleep}
}

// Stream replays the two emission-ordered feeds, merged by processing
// timestamp, writing one JSON line per event to the destination.
func (t *TimelineEmitter) Stream(orderEvents []models.OrderEvent, courierEvents []models.CourierEvent, out OutputDestination) error {
	queue := models.NewEventQueue()
	for i, e := range orderEvents {
		queue.Enqueue(&models.StreamEvent{
			Feed:                models.FeedOrderEvents,
			Seq:                 i,
			ProcessingTimestamp: e.ProcessingTimestamp,
			Payload:             streamedOrderEvent{OrderEvent: e, Feed: models.FeedOrderEvents},
		})
	}
	for i, e := range courierEvents {
		queue.Enqueue(&models.StreamEvent{
			Feed:                models.FeedCourierEvents,
			Seq:                 i,
			ProcessingTimestamp: e.ProcessingTimestamp,
			Payload:             streamedCourierEvent{CourierEvent: e, Feed: models.FeedCourierEvents},
		})
	}

	var prevTs int64 = -1
	for queue.Len() > 0 {
		ev := queue.Dequeue()
		if prevTs >= 0 {
			t.pace(ev.ProcessingTimestamp - prevTs)
		}
		prevTs = ev.ProcessingTimestamp

		line, err := json.Marshal(ev.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal stream event: %w", err)
		}
		if err := out.WriteMessage(ev.Feed, line); err != nil {
			return fmt.Errorf("failed to emit stream event: %w", err)
		}
	}
	return nil
}

func (t *TimelineEmitter) pace(gapMs int64) {
	if gapMs <= 0 || t.speedFactor <= 0 {
		return
	}
	d := time.Duration(float64(gapMs)/t.speedFactor) * time.Millisecond
	if d > maxStreamSleep {
		d = maxStreamSleep
	}
	if d > time.Millisecond {
		t.sleep(d)
	}
}
