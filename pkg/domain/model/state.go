package model

// NavigationState tracks a single navigation session. It is owned exclusively
// by the navigation loop and mutated only between steps; one session means
// one browser page and one state value.
type NavigationState struct {
	CurrentURL   string
	StepCount    int
	goalAchieved bool
	history      []string
}

// NewNavigationState returns an empty state for a fresh session
func NewNavigationState() *NavigationState {
	return &NavigationState{}
}

// Append records a one-line summary of a completed (or blocked) step
func (s *NavigationState) Append(entry string) {
	s.history = append(s.history, entry)
}

// Recent returns at most n of the latest history entries. Older entries
// silently drop out of prompt context; the full slice is retained for
// logging only within the process lifetime.
func (s *NavigationState) Recent(n int) []string {
	if n <= 0 || len(s.history) <= n {
		return s.history
	}
	return s.history[len(s.history)-n:]
}

// HistoryLen reports the total number of recorded entries
func (s *NavigationState) HistoryLen() int {
	return len(s.history)
}

// MarkAchieved flips the goal flag. The transition happens at most once;
// repeated calls return false.
func (s *NavigationState) MarkAchieved() bool {
	if s.goalAchieved {
		return false
	}
	s.goalAchieved = true
	return true
}

// GoalAchieved reports whether the session reached its goal
func (s *NavigationState) GoalAchieved() bool {
	return s.goalAchieved
}
