package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

// Quote is a priced proposal tied to an event.
type Quote struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID   uuid.UUID         `gorm:"column:event_id;type:uuid;not null;index"`
	Status    enums.QuoteStatus `gorm:"column:status;type:quote_status;not null;default:'draft'"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Currency  string            `gorm:"column:currency;not null;default:'mxn'"`
	Notes     *string           `gorm:"column:notes"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
