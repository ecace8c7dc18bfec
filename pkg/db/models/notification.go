package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

// Notification is an append-only operational alert for studio staff.
type Notification struct {
	ID        uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID   uuid.UUID                `gorm:"column:quote_id;type:uuid;not null;index"`
	Type      enums.NotificationType   `gorm:"column:type;type:notification_type;not null"`
	Title     string                   `gorm:"column:title;type:text;not null"`
	Message   string                   `gorm:"column:message;type:text;not null"`
	Status    enums.NotificationStatus `gorm:"column:status;type:notification_status;not null;default:'unread'"`
	CreatedAt time.Time                `gorm:"column:created_at;type:timestamptz;default:now()"`
}
