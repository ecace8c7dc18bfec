package models

import "github.com/google/uuid"

// Stage is a named column of the studio workflow board.
type Stage struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	Position int       `gorm:"column:position;not null"`
}
