package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/luzfilms/luzfilms-backend/pkg/db/models"
)

// Stage ids differ per installation, so the contracted stage is located by
// name rather than hard-coded. The board ships in Spanish; older installs
// renamed the column to "Aprobado".
var contractedStagePatterns = []string{"%contratado%", "%aprobado%"}

// contractedStagePosition is the fallback ordinal of the contracted column on
// the default board layout.
const contractedStagePosition = 3

type stageFinder interface {
	FindStageByNamePatterns(ctx context.Context, patterns []string) (*models.Stage, error)
	FindStageByPosition(ctx context.Context, position int) (*models.Stage, error)
}

// StageResolver locates the workflow stage a paid event should move to.
type StageResolver struct {
	repo stageFinder
}

// NewStageResolver wraps the repository lookup used by the payment cascade.
func NewStageResolver(repo stageFinder) *StageResolver {
	return &StageResolver{repo: repo}
}

// ResolveContracted returns the contracted stage id, or nil when the board has
// no recognizable column. Absence is a valid outcome; callers proceed without
// a stage update.
func (r *StageResolver) ResolveContracted(ctx context.Context) (*uuid.UUID, error) {
	stage, err := r.repo.FindStageByNamePatterns(ctx, contractedStagePatterns)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		stage, err = r.repo.FindStageByPosition(ctx, contractedStagePosition)
		if err != nil {
			return nil, err
		}
	}
	if stage == nil {
		return nil, nil
	}
	id := stage.ID
	return &id, nil
}
