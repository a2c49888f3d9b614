package timeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/pkg/enums"
)

func at(offset int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Hour)
}

func requireEventTypes(t *testing.T, events []Event, want ...enums.TimelineEventType) {
	t.Helper()
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, kind := range want {
		if events[i].Type != kind {
			t.Fatalf("position %d: expected %s, got %s", i, kind, events[i].Type)
		}
	}
}

func TestBuildNilOrder(t *testing.T) {
	if events := Build(nil, nil, nil); events != nil {
		t.Fatalf("expected nil events, got %d", len(events))
	}
}

func TestBuildOrderLifecycle(t *testing.T) {
	shipped := at(2)
	canceled := at(10)
	order := &orders.Snapshot{
		ID:        uuid.New(),
		CreatedAt: at(0),
		Fulfillments: []orders.Fulfillment{{
			ID:              uuid.New(),
			CreatedAt:       at(1),
			ShippedAt:       &shipped,
			TrackingNumbers: []string{"TRACK-1"},
		}},
		CanceledAt: &canceled,
	}

	events := Build(order, nil, nil)
	requireEventTypes(t, events,
		enums.TimelineEventPlaced,
		enums.TimelineEventFulfilled,
		enums.TimelineEventShipped,
		enums.TimelineEventCanceled,
	)
	if !reflect.DeepEqual(events[1].Fulfillment.TrackingNumbers, []string{"TRACK-1"}) {
		t.Fatalf("tracking numbers lost: %v", events[1].Fulfillment.TrackingNumbers)
	}
}

func TestBuildSortsByTimeOldestFirst(t *testing.T) {
	received := at(5)
	order := &orders.Snapshot{
		ID:        uuid.New(),
		CreatedAt: at(0),
		Returns: []orders.ReturnRecord{{
			ID:         uuid.New(),
			Status:     enums.ReturnStatusReceived,
			CreatedAt:  at(3),
			ReceivedAt: &received,
		}},
	}
	notes := []orders.Note{{ID: uuid.New(), Value: "called customer", CreatedAt: at(4)}}
	notifications := []orders.Notification{{ID: uuid.New(), EventName: "order.placed", To: "a@b.c", CreatedAt: at(1)}}

	events := Build(order, notes, notifications)
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Time.Before(events[i-1].Time) {
			t.Fatalf("timestamps must be non-decreasing at position %d", i)
		}
	}
	if events[1].Type != enums.TimelineEventNotification {
		t.Fatalf("expected notification second, got %s", events[1].Type)
	}
	if events[2].Type != enums.TimelineEventReturn {
		t.Fatalf("expected return third, got %s", events[2].Type)
	}
	if events[3].Type != enums.TimelineEventNote {
		t.Fatalf("expected note fourth, got %s", events[3].Type)
	}
	if !events[4].Return.Received {
		t.Fatalf("received return event should be flagged")
	}
}

func TestBuildTiesKeepSourceOrder(t *testing.T) {
	// Everything at the same instant: source order decides, and repeated
	// calls agree.
	ts := at(0)
	order := &orders.Snapshot{
		ID:        uuid.New(),
		CreatedAt: ts,
		Returns:   []orders.ReturnRecord{{ID: uuid.New(), Status: enums.ReturnStatusRequested, CreatedAt: ts}},
		Swaps:     []orders.SwapRecord{{ID: uuid.New(), CreatedAt: ts}},
		Claims:    []orders.ClaimRecord{{ID: uuid.New(), Type: enums.ClaimTypeRefund, CreatedAt: ts}},
	}
	notes := []orders.Note{{ID: uuid.New(), Value: "note", CreatedAt: ts}}

	for run := 0; run < 3; run++ {
		events := Build(order, notes, nil)
		requireEventTypes(t, events,
			enums.TimelineEventPlaced,
			enums.TimelineEventReturn,
			enums.TimelineEventExchange,
			enums.TimelineEventClaim,
			enums.TimelineEventNote,
		)
	}
}

func TestBuildSkipsCanceledFulfillments(t *testing.T) {
	canceled := at(2)
	order := &orders.Snapshot{
		ID:        uuid.New(),
		CreatedAt: at(0),
		Fulfillments: []orders.Fulfillment{{
			ID:         uuid.New(),
			CreatedAt:  at(1),
			CanceledAt: &canceled,
		}},
	}

	events := Build(order, nil, nil)
	requireEventTypes(t, events, enums.TimelineEventPlaced)
}

func TestBuildSwapAndClaimFulfillments(t *testing.T) {
	order := &orders.Snapshot{
		ID:        uuid.New(),
		CreatedAt: at(0),
		Swaps: []orders.SwapRecord{{
			ID:        uuid.New(),
			CreatedAt: at(1),
			Return: &orders.ReturnRecord{
				ID:    uuid.New(),
				Items: []orders.ReturnLine{{ItemID: uuid.New(), Quantity: 1}},
			},
			Fulfillments: []orders.Fulfillment{{ID: uuid.New(), CreatedAt: at(2)}},
		}},
		Claims: []orders.ClaimRecord{{
			ID:           uuid.New(),
			Type:         enums.ClaimTypeReplace,
			CreatedAt:    at(3),
			Fulfillments: []orders.Fulfillment{{ID: uuid.New(), CreatedAt: at(4)}},
		}},
	}

	events := Build(order, nil, nil)
	requireEventTypes(t, events,
		enums.TimelineEventPlaced,
		enums.TimelineEventExchange,
		enums.TimelineEventFulfilled,
		enums.TimelineEventClaim,
		enums.TimelineEventFulfilled,
	)

	if len(events[1].Exchange.ReturnItems) != 1 {
		t.Fatalf("expected 1 exchange return item, got %d", len(events[1].Exchange.ReturnItems))
	}
	if events[2].Fulfillment.SwapID == nil || *events[2].Fulfillment.SwapID != order.Swaps[0].ID {
		t.Fatalf("swap fulfillment not linked: %+v", events[2].Fulfillment.SwapID)
	}
	if events[4].Fulfillment.ClaimID == nil || *events[4].Fulfillment.ClaimID != order.Claims[0].ID {
		t.Fatalf("claim fulfillment not linked: %+v", events[4].Fulfillment.ClaimID)
	}
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	order := &orders.Snapshot{
		ID:        uuid.New(),
		CreatedAt: at(0),
		Returns: []orders.ReturnRecord{{
			ID:        uuid.New(),
			Status:    enums.ReturnStatusRequested,
			CreatedAt: at(1),
			Items:     []orders.ReturnLine{{ItemID: uuid.New(), Quantity: 2}},
		}},
	}
	itemsBefore := order.Returns[0].Items[0]

	events := Build(order, nil, nil)
	events[1].Return.Items[0].Quantity = 99

	if !reflect.DeepEqual(order.Returns[0].Items[0], itemsBefore) {
		t.Fatalf("input return line mutated: %+v", order.Returns[0].Items[0])
	}
}
