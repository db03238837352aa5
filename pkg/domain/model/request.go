package model

import "fmt"

// NavigationRequest describes one navigation session: where to start, what
// to achieve, and optionally which repository is being targeted.
type NavigationRequest struct {
	StartURL   string
	Goal       string
	Repository string // "owner/name" when known, empty otherwise
}

// DefaultGoal builds the navigation goal text when no free-text override was
// given. The no-sign-in reminder is always appended because models otherwise
// drift toward authentication flows on GitHub.
func (r *NavigationRequest) DefaultGoal() string {
	goal := r.Goal
	if goal == "" {
		if r.Repository != "" {
			goal = fmt.Sprintf("Search for '%s' repository, navigate to it, find the Releases section, and extract the latest release information including version, tag/commit hash, and author.", r.Repository)
		} else {
			goal = "Search for the requested repository, navigate to it, find the Releases section, and extract the latest release information."
		}
	}
	return goal + " IMPORTANT: You can view public repositories without signing in. DO NOT click 'Sign in' or 'Create account' links."
}
