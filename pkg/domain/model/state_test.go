package model_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/a4kulshr/github-navigator/pkg/domain/model"
)

func TestNavigationState_Recent(t *testing.T) {
	state := model.NewNavigationState()

	// Empty history returns empty slice
	gt.Number(t, len(state.Recent(5))).Equal(0)

	for i := 1; i <= 8; i++ {
		state.Append(fmt.Sprintf("Step %d: scroll on 'page' - success", i))
	}

	// Window smaller than history keeps only the latest entries
	recent := state.Recent(5)
	gt.Number(t, len(recent)).Equal(5)
	gt.String(t, recent[0]).Contains("Step 4")
	gt.String(t, recent[4]).Contains("Step 8")

	// Window larger than history returns everything
	gt.Number(t, len(state.Recent(100))).Equal(8)
	gt.Number(t, state.HistoryLen()).Equal(8)
}

func TestNavigationState_MarkAchieved(t *testing.T) {
	state := model.NewNavigationState()

	gt.False(t, state.GoalAchieved())
	gt.True(t, state.MarkAchieved())
	gt.True(t, state.GoalAchieved())

	// The transition only happens once
	gt.False(t, state.MarkAchieved())
	gt.True(t, state.GoalAchieved())
}

func TestNavigationRequest_DefaultGoal(t *testing.T) {
	req := &model.NavigationRequest{Repository: "openclaw/openclaw"}
	goal := req.DefaultGoal()
	gt.String(t, goal).Contains("openclaw/openclaw")
	gt.String(t, goal).Contains("DO NOT click 'Sign in'")

	// An explicit goal still gets the no-sign-in reminder
	custom := &model.NavigationRequest{Goal: "Find the changelog"}
	gt.String(t, custom.DefaultGoal()).Contains("Find the changelog")
	gt.String(t, custom.DefaultGoal()).Contains("without signing in")
}
