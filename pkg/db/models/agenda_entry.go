package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

// AgendaEntry is a calendar commitment for an event. At most one non-canceled
// entry may exist per event (partial unique index agenda_entries_active_event).
type AgendaEntry struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID     uuid.UUID          `gorm:"column:event_id;type:uuid;not null;index"`
	Date        time.Time          `gorm:"column:date;type:timestamptz;not null"`
	Status      enums.AgendaStatus `gorm:"column:status;type:agenda_status;not null;default:'tentative'"`
	Description string             `gorm:"column:description;type:text;not null;default:''"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
