package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luzfilms/luzfilms-backend/pkg/db/models"
)

// Repository exposes persistence helpers for events and the stage board.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	FindStageByNamePatterns(ctx context.Context, patterns []string) (*models.Stage, error)
	FindStageByPosition(ctx context.Context, position int) (*models.Stage, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an events repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repositoryImpl) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// FindStageByNamePatterns returns the lowest-position stage whose name matches
// any of the given ILIKE patterns, or (nil, nil) when none does.
func (r *repositoryImpl) FindStageByNamePatterns(ctx context.Context, patterns []string) (*models.Stage, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	query := r.db.WithContext(ctx).Model(&models.Stage{})
	clause := r.db.WithContext(ctx).Where("name ILIKE ?", patterns[0])
	for _, pattern := range patterns[1:] {
		clause = clause.Or("name ILIKE ?", pattern)
	}
	var stage models.Stage
	err := query.Where(clause).Order("position ASC").First(&stage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *repositoryImpl) FindStageByPosition(ctx context.Context, position int) (*models.Stage, error) {
	var stage models.Stage
	err := r.db.WithContext(ctx).Where("position = ?", position).First(&stage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stage, nil
}
