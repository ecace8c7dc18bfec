package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

// Event is a booked engagement (wedding, corporate shoot, session).
// StageID points into the workflow board and is resolved by name, not by a
// fixed identifier.
type Event struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string            `gorm:"column:title;not null"`
	Status    enums.EventStatus `gorm:"column:status;type:event_status;not null;default:'inquiry'"`
	StageID   *uuid.UUID        `gorm:"column:stage_id;type:uuid"`
	Date      *time.Time        `gorm:"column:date;type:timestamptz"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
