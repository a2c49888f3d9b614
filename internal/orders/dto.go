package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/pkg/enums"
)

// Snapshot is the immutable order aggregate the modification engine works on.
// It is rebuilt from storage on every read; callers never patch it in place.
type Snapshot struct {
	ID             uuid.UUID `json:"id"`
	DisplayID      int64     `json:"display_id"`
	RegionID       uuid.UUID `json:"region_id"`
	CurrencyCode   string    `json:"currency_code"`
	TaxRate        float64   `json:"tax_rate"`
	CustomerEmail  string    `json:"customer_email"`
	NoNotification bool      `json:"no_notification"`

	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	Items        []LineItem     `json:"items"`
	Returns      []ReturnRecord `json:"returns"`
	Swaps        []SwapRecord   `json:"swaps"`
	Claims       []ClaimRecord  `json:"claims"`
	Fulfillments []Fulfillment  `json:"fulfillments"`
}

// LineItem mirrors one purchasable line of the order.
type LineItem struct {
	ID               uuid.UUID `json:"id"`
	VariantID        uuid.UUID `json:"variant_id"`
	Title            string    `json:"title"`
	Thumbnail        *string   `json:"thumbnail,omitempty"`
	UnitPriceCents   int64     `json:"unit_price_cents"`
	Quantity         int       `json:"quantity"`
	ReturnedQuantity int       `json:"returned_quantity"`
	RefundableCents  int64     `json:"refundable_cents"`
}

// ReturnRecord is a prior return, standalone or owned by a swap/claim.
type ReturnRecord struct {
	ID                uuid.UUID          `json:"id"`
	SwapID            *uuid.UUID         `json:"swap_id,omitempty"`
	ClaimID           *uuid.UUID         `json:"claim_id,omitempty"`
	Status            enums.ReturnStatus `json:"status"`
	RefundAmountCents int64              `json:"refund_amount_cents"`
	ReceivedAt        *time.Time         `json:"received_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	Items             []ReturnLine       `json:"items"`
}

// ReturnLine is one line item committed to a return or claim.
type ReturnLine struct {
	ItemID   uuid.UUID  `json:"item_id"`
	Quantity int        `json:"quantity"`
	ReasonID *uuid.UUID `json:"reason_id,omitempty"`
	Note     *string    `json:"note,omitempty"`
	Images   []string   `json:"images,omitempty"`
}

// SwapRecord is a prior exchange against the order.
type SwapRecord struct {
	ID                 uuid.UUID        `json:"id"`
	DifferenceDueCents int64            `json:"difference_due_cents"`
	NoNotification     bool             `json:"no_notification"`
	CanceledAt         *time.Time       `json:"canceled_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	Return             *ReturnRecord    `json:"return,omitempty"`
	AdditionalItems    []AdditionalLine `json:"additional_items"`
	Fulfillments       []Fulfillment    `json:"fulfillments"`
}

// AdditionalLine is a replacement item carried by a swap or replace claim.
type AdditionalLine struct {
	VariantID      uuid.UUID `json:"variant_id"`
	Title          string    `json:"title"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
}

// ClaimRecord is a prior claim against the order.
type ClaimRecord struct {
	ID                uuid.UUID       `json:"id"`
	Type              enums.ClaimType `json:"type"`
	RefundAmountCents int64           `json:"refund_amount_cents"`
	NoNotification    bool            `json:"no_notification"`
	CanceledAt        *time.Time      `json:"canceled_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	Items             []ReturnLine    `json:"items"`
	Return            *ReturnRecord   `json:"return,omitempty"`
	Fulfillments      []Fulfillment   `json:"fulfillments"`
}

// Fulfillment covers part of the order or of a swap/claim shipment.
type Fulfillment struct {
	ID              uuid.UUID         `json:"id"`
	TrackingNumbers []string          `json:"tracking_numbers,omitempty"`
	ShippedAt       *time.Time        `json:"shipped_at,omitempty"`
	CanceledAt      *time.Time        `json:"canceled_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	Quantities      map[uuid.UUID]int `json:"quantities,omitempty"`
}

// Note is an operator note shown on the timeline.
type Note struct {
	ID        uuid.UUID  `json:"id"`
	Value     string     `json:"value"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Notification is a delivered notification shown on the timeline.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	EventName string    `json:"event_name"`
	To        string    `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}
