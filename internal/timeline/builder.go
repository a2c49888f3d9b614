package timeline

import (
	"sort"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/internal/orders"
	"github.com/oakline/backoffice-backend/pkg/enums"
)

// Build flattens the order snapshot, its notes, and its notifications into a
// single feed sorted by time, oldest first. Sources are appended in a fixed
// order before the stable sort, so events sharing a timestamp keep a
// deterministic relative order across calls. Inputs are never mutated.
func Build(order *orders.Snapshot, notes []orders.Note, notifications []orders.Notification) []Event {
	if order == nil {
		return nil
	}

	events := make([]Event, 0, approximateSize(order, notes, notifications))

	events = append(events, Event{
		Type: enums.TimelineEventPlaced,
		Time: order.CreatedAt,
	})

	events = appendFulfillments(events, order.Fulfillments, nil, nil)
	for _, ret := range order.Returns {
		events = appendReturn(events, ret)
	}
	for _, swap := range order.Swaps {
		events = append(events, exchangeEvent(swap))
		events = appendFulfillments(events, swap.Fulfillments, ptr(swap.ID), nil)
	}
	for _, claim := range order.Claims {
		events = append(events, claimEvent(claim))
		events = appendFulfillments(events, claim.Fulfillments, nil, ptr(claim.ID))
	}
	for _, note := range notes {
		events = append(events, Event{
			Type: enums.TimelineEventNote,
			Time: note.CreatedAt,
			Note: &NoteData{NoteID: note.ID, Value: note.Value, AuthorID: note.AuthorID},
		})
	}
	for _, notification := range notifications {
		events = append(events, Event{
			Type: enums.TimelineEventNotification,
			Time: notification.CreatedAt,
			Notification: &NotificationData{
				NotificationID: notification.ID,
				EventName:      notification.EventName,
				To:             notification.To,
			},
		})
	}
	if order.CanceledAt != nil {
		events = append(events, Event{
			Type: enums.TimelineEventCanceled,
			Time: *order.CanceledAt,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events
}

func appendFulfillments(events []Event, fulfillments []orders.Fulfillment, swapID, claimID *uuid.UUID) []Event {
	for _, f := range fulfillments {
		if f.CanceledAt != nil {
			continue
		}
		data := &FulfillmentData{
			FulfillmentID:   f.ID,
			SwapID:          swapID,
			ClaimID:         claimID,
			TrackingNumbers: f.TrackingNumbers,
			Quantities:      f.Quantities,
		}
		events = append(events, Event{
			Type:        enums.TimelineEventFulfilled,
			Time:        f.CreatedAt,
			Fulfillment: data,
		})
		if f.ShippedAt != nil {
			events = append(events, Event{
				Type:        enums.TimelineEventShipped,
				Time:        *f.ShippedAt,
				Fulfillment: data,
			})
		}
	}
	return events
}

func appendReturn(events []Event, ret orders.ReturnRecord) []Event {
	data := &ReturnData{
		ReturnID:          ret.ID,
		Status:            ret.Status,
		RefundAmountCents: ret.RefundAmountCents,
		Items:             returnItems(ret.Items),
	}
	events = append(events, Event{
		Type:   enums.TimelineEventReturn,
		Time:   ret.CreatedAt,
		Return: data,
	})
	if ret.ReceivedAt != nil {
		received := *data
		received.Received = true
		events = append(events, Event{
			Type:   enums.TimelineEventReturn,
			Time:   *ret.ReceivedAt,
			Return: &received,
		})
	}
	return events
}

func exchangeEvent(swap orders.SwapRecord) Event {
	data := &ExchangeData{
		SwapID:             swap.ID,
		DifferenceDueCents: swap.DifferenceDueCents,
		AdditionalItems:    variantData(swap.AdditionalItems),
		Canceled:           swap.CanceledAt != nil,
	}
	if swap.Return != nil {
		data.ReturnItems = returnItems(swap.Return.Items)
	}
	return Event{
		Type:     enums.TimelineEventExchange,
		Time:     swap.CreatedAt,
		Exchange: data,
	}
}

func claimEvent(claim orders.ClaimRecord) Event {
	data := &ClaimData{
		ClaimID:  claim.ID,
		Type:     claim.Type,
		Items:    returnItems(claim.Items),
		Canceled: claim.CanceledAt != nil,
	}
	return Event{
		Type:  enums.TimelineEventClaim,
		Time:  claim.CreatedAt,
		Claim: data,
	}
}

func returnItems(lines []orders.ReturnLine) []ReturnItemData {
	items := make([]ReturnItemData, 0, len(lines))
	for _, line := range lines {
		items = append(items, ReturnItemData{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return items
}

func variantData(lines []orders.AdditionalLine) []VariantData {
	items := make([]VariantData, 0, len(lines))
	for _, line := range lines {
		items = append(items, VariantData{
			VariantID: line.VariantID,
			Title:     line.Title,
			Quantity:  line.Quantity,
		})
	}
	return items
}

func approximateSize(order *orders.Snapshot, notes []orders.Note, notifications []orders.Notification) int {
	return 2 + len(order.Fulfillments) + 2*len(order.Returns) + len(order.Swaps) +
		len(order.Claims) + len(notes) + len(notifications)
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }
