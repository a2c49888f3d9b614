package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderNote is a free-form operator note attached to an order.
type OrderNote struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ResourceID   uuid.UUID  `gorm:"column:resource_id;type:uuid;not null"`
	ResourceType string     `gorm:"column:resource_type;not null;default:'order'"`
	Value        string     `gorm:"column:value;not null"`
	AuthorID     *uuid.UUID `gorm:"column:author_id;type:uuid"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderNotification records an outbound notification already delivered by the
// external notification service; the timeline only displays it.
type OrderNotification struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ResourceID uuid.UUID `gorm:"column:resource_id;type:uuid;not null"`
	EventName  string    `gorm:"column:event_name;not null"`
	To         string    `gorm:"column:recipient;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
