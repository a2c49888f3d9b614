package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingOption is a region-scoped shipping method. Return options carry
// IsReturn=true and are the only ones offered during a modification.
type ShippingOption struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RegionID    uuid.UUID `gorm:"column:region_id;type:uuid;not null"`
	Name        string    `gorm:"column:name;not null"`
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	IsReturn    bool      `gorm:"column:is_return;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
