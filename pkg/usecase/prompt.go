package usecase

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/a4kulshr/github-navigator/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompts/decide_action.md
var decidePromptTemplate string

//go:embed prompts/extract_release.md
var extractPrompt string

// PromptBuilder renders the instruction prompts sent alongside screenshots.
// Rendering is deterministic: the same goal, history window, and mode always
// produce the same prompt text.
type PromptBuilder struct {
	decide *template.Template
}

// NewPromptBuilder parses the embedded templates
func NewPromptBuilder() (*PromptBuilder, error) {
	tmpl, err := template.New("decide").Parse(decidePromptTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse decide-action prompt template")
	}
	return &PromptBuilder{decide: tmpl}, nil
}

// DecideAction renders the decide-next-action prompt from the goal, the
// page's current URL, and the bounded recent-history window
func (b *PromptBuilder) DecideAction(goal, url string, history []string) (string, error) {
	historyText := "Starting navigation"
	if len(history) > 0 {
		historyText = strings.Join(history, "\n")
	}
	if url == "" {
		url = "unknown"
	}

	var buf bytes.Buffer
	err := b.decide.Execute(&buf, map[string]any{
		"Goal":    goal,
		"URL":     url,
		"History": historyText,
		"Width":   types.ViewportWidth,
		"Height":  types.ViewportHeight,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render decide-action prompt")
	}
	return buf.String(), nil
}

// ExtractRelease returns the extract-structured-data prompt. It takes no
// inputs: the screenshot is the only context the extraction needs.
func (b *PromptBuilder) ExtractRelease() string {
	return extractPrompt
}
