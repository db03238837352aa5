package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/a4kulshr/github-navigator/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

// actionWire mirrors the JSON shape the prompts request. The decide-action
// template uses action_type/target/value; some models answer with the
// action/target_description/type_text variants instead, so both are accepted.
type actionWire struct {
	ActionType        string          `json:"action_type"`
	Action            string          `json:"action"`
	Target            string          `json:"target"`
	TargetDescription string          `json:"target_description"`
	Value             json.RawMessage `json:"value"`
	TypeText          string          `json:"type_text"`
	Coordinates       []float64       `json:"coordinates"`
	Confidence        float64         `json:"confidence"`
	Reasoning         string          `json:"reasoning"`
}

// ParseAction converts a raw vision model response into a NavigationAction.
// It is a total function: malformed input yields a safe wait action so the
// loop always has something to act on.
func ParseAction(ctx context.Context, raw string) *model.NavigationAction {
	logger := ctxlog.From(ctx)

	cleaned := StripCodeFence(raw)

	var wire actionWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		logger.Debug("failed to parse vision model response",
			"error", err,
			"response", raw,
		)
		return &model.NavigationAction{
			Kind:      model.ActionWait,
			Reasoning: "failed to parse vision model response: " + err.Error(),
		}
	}

	kind := model.ActionKind(wire.ActionType)
	if kind == "" {
		kind = model.ActionKind(wire.Action)
	}
	if kind == "" {
		kind = model.ActionWait
	}

	action := &model.NavigationAction{
		Kind:       kind,
		Target:     wire.Target,
		Value:      decodeValue(wire.Value),
		Confidence: wire.Confidence,
		Reasoning:  wire.Reasoning,
	}
	if action.Target == "" {
		action.Target = wire.TargetDescription
	}
	if action.Value == "" && wire.TypeText != "" {
		action.Value = wire.TypeText
	}

	// Coordinates must be an (x, y) pair of numbers; anything else is
	// treated as absent.
	if len(wire.Coordinates) == 2 {
		action.Coordinates = &model.Coordinates{X: wire.Coordinates[0], Y: wire.Coordinates[1]}
	}

	if !action.Kind.IsKnown() {
		logger.Debug("unknown action kind, substituting wait", "kind", action.Kind)
		action.Reasoning = "unknown action kind '" + string(action.Kind) + "': " + action.Reasoning
		action.Kind = model.ActionWait
		action.Coordinates = nil
	}

	return action
}

// decodeValue accepts the value field as either a JSON string or an inline
// object. Objects are kept as their serialized form so extraction payloads
// survive intact.
func decodeValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// StripCodeFence removes surrounding markdown code fences, if present, so
// fenced and unfenced responses decode identically.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
