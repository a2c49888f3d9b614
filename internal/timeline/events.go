// Package timeline flattens an order's history into a single chronological
// feed for the operator dashboard.
package timeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/pkg/enums"
)

// Event is one entry of the order timeline. Exactly one payload pointer is
// set, matching Type.
type Event struct {
	Type enums.TimelineEventType `json:"type"`
	Time time.Time               `json:"time"`

	Fulfillment  *FulfillmentData  `json:"fulfillment,omitempty"`
	Return       *ReturnData       `json:"return,omitempty"`
	Exchange     *ExchangeData     `json:"exchange,omitempty"`
	Claim        *ClaimData        `json:"claim,omitempty"`
	Note         *NoteData         `json:"note,omitempty"`
	Notification *NotificationData `json:"notification,omitempty"`
}

// FulfillmentData backs fulfilled and shipped events.
type FulfillmentData struct {
	FulfillmentID   uuid.UUID         `json:"fulfillment_id"`
	SwapID          *uuid.UUID        `json:"swap_id,omitempty"`
	ClaimID         *uuid.UUID        `json:"claim_id,omitempty"`
	TrackingNumbers []string          `json:"tracking_numbers,omitempty"`
	Quantities      map[uuid.UUID]int `json:"quantities,omitempty"`
}

// ReturnData backs return events in both their requested and received phase.
type ReturnData struct {
	ReturnID          uuid.UUID          `json:"return_id"`
	Status            enums.ReturnStatus `json:"status"`
	RefundAmountCents int64              `json:"refund_amount_cents"`
	Items             []ReturnItemData   `json:"items"`
	Received          bool               `json:"received"`
}

// ReturnItemData is one line of a return event.
type ReturnItemData struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// ExchangeData backs exchange events.
type ExchangeData struct {
	SwapID             uuid.UUID        `json:"swap_id"`
	DifferenceDueCents int64            `json:"difference_due_cents"`
	ReturnItems        []ReturnItemData `json:"return_items"`
	AdditionalItems    []VariantData    `json:"additional_items"`
	Canceled           bool             `json:"canceled"`
}

// VariantData is one replacement line of an exchange or claim event.
type VariantData struct {
	VariantID uuid.UUID `json:"variant_id"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
}

// ClaimData backs claim events.
type ClaimData struct {
	ClaimID  uuid.UUID        `json:"claim_id"`
	Type     enums.ClaimType  `json:"claim_type"`
	Items    []ReturnItemData `json:"items"`
	Canceled bool             `json:"canceled"`
}

// NoteData backs note events.
type NoteData struct {
	NoteID   uuid.UUID  `json:"note_id"`
	Value    string     `json:"value"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
}

// NotificationData backs notification events.
type NotificationData struct {
	NotificationID uuid.UUID `json:"notification_id"`
	EventName      string    `json:"event_name"`
	To             string    `json:"to"`
}
