package agenda

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luzfilms/luzfilms-backend/pkg/db/models"
	"github.com/luzfilms/luzfilms-backend/pkg/enums"
)

// Repository exposes persistence helpers for calendar entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveByEventID(ctx context.Context, eventID uuid.UUID) (*models.AgendaEntry, error)
	Create(ctx context.Context, entry *models.AgendaEntry) error
	Update(ctx context.Context, entry *models.AgendaEntry) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an agenda repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// FindActiveByEventID returns the non-canceled entry for the event, or
// (nil, nil) when the event has no live calendar slot.
func (r *repositoryImpl) FindActiveByEventID(ctx context.Context, eventID uuid.UUID) (*models.AgendaEntry, error) {
	var entry models.AgendaEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status <> ?", eventID, enums.AgendaStatusCanceled).
		Order("created_at ASC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repositoryImpl) Create(ctx context.Context, entry *models.AgendaEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) Update(ctx context.Context, entry *models.AgendaEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}
