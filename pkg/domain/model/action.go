package model

import "fmt"

// ActionKind identifies what the vision model asked the browser to do
type ActionKind string

const (
	ActionClick   ActionKind = "click"
	ActionType    ActionKind = "type"
	ActionScroll  ActionKind = "scroll"
	ActionWait    ActionKind = "wait"
	ActionExtract ActionKind = "extract"
	ActionDone    ActionKind = "done"
)

// IsTerminal reports whether the action ends the navigation session
func (k ActionKind) IsTerminal() bool {
	return k == ActionExtract || k == ActionDone
}

// IsKnown reports whether the kind is one the executor can handle
func (k ActionKind) IsKnown() bool {
	switch k {
	case ActionClick, ActionType, ActionScroll, ActionWait, ActionExtract, ActionDone:
		return true
	default:
		return false
	}
}

// Coordinates is a viewport-relative click position
type Coordinates struct {
	X float64
	Y float64
}

// NavigationAction is one decision from the vision model. Value carries the
// text to type for type actions, the scroll direction for scroll actions,
// and the extraction payload for terminal actions.
type NavigationAction struct {
	Kind        ActionKind
	Target      string
	Value       string
	Coordinates *Coordinates
	Confidence  float64
	Reasoning   string
}

// Summary renders the one-line history entry for a completed step
func (a *NavigationAction) Summary(step int, outcome string) string {
	return fmt.Sprintf("Step %d: %s on '%s' - %s", step, a.Kind, a.Target, outcome)
}
