package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueOrdersByProcessingTimestamp(t *testing.T) {
	q := NewEventQueue()
	q.Enqueue(&StreamEvent{Feed: FeedOrderEvents, Seq: 0, ProcessingTimestamp: 300})
	q.Enqueue(&StreamEvent{Feed: FeedOrderEvents, Seq: 1, ProcessingTimestamp: 100})
	q.Enqueue(&StreamEvent{Feed: FeedCourierEvents, Seq: 0, ProcessingTimestamp: 200})

	var got []int64
	for q.Len() > 0 {
		got = append(got, q.Dequeue().ProcessingTimestamp)
	}
	assert.Equal(t, []int64{100, 200, 300}, got)
}

func TestEventQueueBreaksTiesByFeedThenSeq(t *testing.T) {
	q := NewEventQueue()
	q.Enqueue(&StreamEvent{Feed: FeedOrderEvents, Seq: 1, ProcessingTimestamp: 100})
	q.Enqueue(&StreamEvent{Feed: FeedOrderEvents, Seq: 0, ProcessingTimestamp: 100})
	q.Enqueue(&StreamEvent{Feed: FeedCourierEvents, Seq: 0, ProcessingTimestamp: 100})

	first := q.Dequeue()
	require.NotNil(t, first)
	assert.Equal(t, FeedCourierEvents, first.Feed)

	second := q.Dequeue()
	assert.Equal(t, FeedOrderEvents, second.Feed)
	assert.Equal(t, 0, second.Seq)

	third := q.Dequeue()
	assert.Equal(t, 1, third.Seq)
}

func TestEventQueueEmptyBehaviour(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Dequeue())
	assert.Nil(t, q.Peek())
	assert.Zero(t, q.Len())

	q.Enqueue(&StreamEvent{ProcessingTimestamp: 1})
	assert.Equal(t, 1, q.Len())
	assert.NotNil(t, q.Peek())
	assert.Equal(t, 1, q.Len(), "peek must not consume")
}
