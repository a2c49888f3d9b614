package enums

import "fmt"

// TimelineEventType identifies the kind of an order timeline event. The set is
// closed: renderers dispatch exhaustively on it and the aggregator drops
// anything it does not recognize.
type TimelineEventType string

const (
	TimelineEventPlaced       TimelineEventType = "placed"
	TimelineEventFulfilled    TimelineEventType = "fulfilled"
	TimelineEventShipped      TimelineEventType = "shipped"
	TimelineEventCanceled     TimelineEventType = "canceled"
	TimelineEventNote         TimelineEventType = "note"
	TimelineEventReturn       TimelineEventType = "return"
	TimelineEventExchange     TimelineEventType = "exchange"
	TimelineEventClaim        TimelineEventType = "claim"
	TimelineEventNotification TimelineEventType = "notification"
)

var validTimelineEventTypes = []TimelineEventType{
	TimelineEventPlaced,
	TimelineEventFulfilled,
	TimelineEventShipped,
	TimelineEventCanceled,
	TimelineEventNote,
	TimelineEventReturn,
	TimelineEventExchange,
	TimelineEventClaim,
	TimelineEventNotification,
}

// String implements fmt.Stringer.
func (t TimelineEventType) String() string {
	return string(t)
}

// IsValid reports whether the event type is recognized.
func (t TimelineEventType) IsValid() bool {
	for _, candidate := range validTimelineEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTimelineEventType converts a raw string into a TimelineEventType.
func ParseTimelineEventType(value string) (TimelineEventType, error) {
	for _, candidate := range validTimelineEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid timeline event type %q", value)
}
