package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the read model for an order aggregate. The modification engine
// treats it as an immutable snapshot: it is reloaded in full on every view
// activation and after every successful mutation.
type Order struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayID      int64      `gorm:"column:display_id;not null"`
	RegionID       uuid.UUID  `gorm:"column:region_id;type:uuid;not null"`
	CurrencyCode   string     `gorm:"column:currency_code;not null"`
	TaxRate        float64    `gorm:"column:tax_rate;not null;default:0"`
	CustomerEmail  string     `gorm:"column:customer_email;not null"`
	NoNotification bool       `gorm:"column:no_notification;not null;default:false"`
	CanceledAt     *time.Time `gorm:"column:canceled_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Items        []OrderLineItem `gorm:"foreignKey:OrderID"`
	Returns      []ReturnRecord  `gorm:"foreignKey:OrderID"`
	Swaps        []SwapRecord    `gorm:"foreignKey:OrderID"`
	Claims       []ClaimRecord   `gorm:"foreignKey:OrderID"`
	Fulfillments []Fulfillment   `gorm:"foreignKey:OrderID"`
}

// TableName overrides the default pluralization.
func (Order) TableName() string { return "orders" }
