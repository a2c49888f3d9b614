package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem captures the snapshot of each purchasable line within an order.
// RefundableCents is the backend-quoted refund value for the full remaining
// quantity; the per-unit refund is derived from it, never recomputed locally.
type OrderLineItem struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	VariantID        uuid.UUID `gorm:"column:variant_id;type:uuid;not null"`
	Title            string    `gorm:"column:title;not null"`
	Thumbnail        *string   `gorm:"column:thumbnail"`
	UnitPriceCents   int64     `gorm:"column:unit_price_cents;not null"`
	Quantity         int       `gorm:"column:quantity;not null"`
	ReturnedQuantity int       `gorm:"column:returned_quantity;not null;default:0"`
	RefundableCents  int64     `gorm:"column:refundable_cents;not null;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// VariantPrice is a region- or currency-scoped price entry for a variant.
// Exactly one of RegionID/CurrencyCode is expected to be set per row.
type VariantPrice struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID    uuid.UUID  `gorm:"column:variant_id;type:uuid;not null"`
	RegionID     *uuid.UUID `gorm:"column:region_id;type:uuid"`
	CurrencyCode *string    `gorm:"column:currency_code"`
	AmountCents  int64      `gorm:"column:amount_cents;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
