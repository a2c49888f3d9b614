package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/pkg/enums"
	"github.com/oakline/backoffice-backend/pkg/types"
)

// ReturnRecord is a prior return against an order. Standalone returns have
// neither SwapID nor ClaimID; swap/claim returns reference their parent.
type ReturnRecord struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID          `gorm:"column:order_id;type:uuid;not null"`
	SwapID            *uuid.UUID         `gorm:"column:swap_id;type:uuid"`
	ClaimID           *uuid.UUID         `gorm:"column:claim_id;type:uuid"`
	Status            enums.ReturnStatus `gorm:"column:status;not null;default:'requested'"`
	RefundAmountCents int64              `gorm:"column:refund_amount_cents;not null;default:0"`
	ReceivedAt        *time.Time         `gorm:"column:received_at"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`

	Items []ReturnItem `gorm:"foreignKey:ReturnID"`
}

func (ReturnRecord) TableName() string { return "returns" }

// ReturnItem is a single line committed to a return.
type ReturnItem struct {
	ID       uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReturnID uuid.UUID         `gorm:"column:return_id;type:uuid;not null"`
	ItemID   uuid.UUID         `gorm:"column:item_id;type:uuid;not null"`
	Quantity int               `gorm:"column:quantity;not null"`
	ReasonID *uuid.UUID        `gorm:"column:reason_id;type:uuid"`
	Note     *string           `gorm:"column:note"`
	Images   types.StringSlice `gorm:"column:images;type:jsonb"`
}

// SwapRecord is a prior exchange: items returned plus replacement items
// shipped, settled by DifferenceDueCents.
type SwapRecord struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	DifferenceDueCents int64      `gorm:"column:difference_due_cents;not null;default:0"`
	NoNotification     bool       `gorm:"column:no_notification;not null;default:false"`
	CanceledAt         *time.Time `gorm:"column:canceled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`

	Return          *ReturnRecord        `gorm:"foreignKey:SwapID"`
	AdditionalItems []SwapAdditionalItem `gorm:"foreignKey:SwapID"`
	Fulfillments    []Fulfillment        `gorm:"foreignKey:SwapID"`
}

func (SwapRecord) TableName() string { return "swaps" }

// SwapAdditionalItem is a replacement line shipped as part of a swap.
type SwapAdditionalItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SwapID         uuid.UUID `gorm:"column:swap_id;type:uuid;not null"`
	VariantID      uuid.UUID `gorm:"column:variant_id;type:uuid;not null"`
	Title          string    `gorm:"column:title;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
}

// ClaimRecord compensates a customer issue. Replace-type claims ship new
// items; refund-type claims settle in money without shipping anything.
type ClaimRecord struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	Type              enums.ClaimType `gorm:"column:type;not null"`
	RefundAmountCents int64           `gorm:"column:refund_amount_cents;not null;default:0"`
	NoNotification    bool            `gorm:"column:no_notification;not null;default:false"`
	CanceledAt        *time.Time      `gorm:"column:canceled_at"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`

	Items        []ClaimItem   `gorm:"foreignKey:ClaimID"`
	Return       *ReturnRecord `gorm:"foreignKey:ClaimID"`
	Fulfillments []Fulfillment `gorm:"foreignKey:ClaimID"`
}

func (ClaimRecord) TableName() string { return "claims" }

// ClaimItem is an order line the claim is raised against.
type ClaimItem struct {
	ID       uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClaimID  uuid.UUID         `gorm:"column:claim_id;type:uuid;not null"`
	ItemID   uuid.UUID         `gorm:"column:item_id;type:uuid;not null"`
	Quantity int               `gorm:"column:quantity;not null"`
	ReasonID *uuid.UUID        `gorm:"column:reason_id;type:uuid"`
	Note     *string           `gorm:"column:note"`
	Images   types.StringSlice `gorm:"column:images;type:jsonb"`
}

// Fulfillment belongs to the order itself or to a swap/claim sub-resource.
type Fulfillment struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         *uuid.UUID        `gorm:"column:order_id;type:uuid"`
	SwapID          *uuid.UUID        `gorm:"column:swap_id;type:uuid"`
	ClaimID         *uuid.UUID        `gorm:"column:claim_id;type:uuid"`
	TrackingNumbers types.StringSlice `gorm:"column:tracking_numbers;type:jsonb"`
	ShippedAt       *time.Time        `gorm:"column:shipped_at"`
	CanceledAt      *time.Time        `gorm:"column:canceled_at"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`

	Items []FulfillmentItem `gorm:"foreignKey:FulfillmentID"`
}

// FulfillmentItem records how many units of a line item a fulfillment covers.
type FulfillmentItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FulfillmentID uuid.UUID `gorm:"column:fulfillment_id;type:uuid;not null"`
	ItemID        uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Quantity      int       `gorm:"column:quantity;not null"`
}
