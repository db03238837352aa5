package interfaces

import (
	"context"

	"github.com/a4kulshr/github-navigator/pkg/domain/model"
)

// NavigatorUseCase defines the navigation session operation
type NavigatorUseCase interface {
	// Navigate runs the perceive-decide-act loop until release information
	// is extracted, the step budget is exhausted, or a fatal provider error
	// occurs. A budget-exhausted session returns types.ErrGoalNotAchieved.
	Navigate(ctx context.Context, req *model.NavigationRequest) (*model.ReleaseReport, error)
}
