package usecase

import (
	"regexp"
	"strings"
)

// AuthGuard detects authentication and sign-up surfaces so the loop never
// interacts with them, regardless of what the model proposed. The checks are
// heuristic and err toward blocking: a false positive costs one wasted step,
// a false negative walks the session into a login wall.
type AuthGuard struct {
	urlPattern    *regexp.Regexp
	pageMarkers   []string
	targetMarkers []string
}

// NewAuthGuard returns a guard tuned for GitHub's authentication surfaces
func NewAuthGuard() *AuthGuard {
	return &AuthGuard{
		urlPattern: regexp.MustCompile(`github\.com/(login|session|sessions|signup|join)`),
		pageMarkers: []string{
			"sign up for github",
			"create your free account",
			"sign in to github",
			"continue with google",
			"continue with apple",
		},
		targetMarkers: []string{
			"sign in",
			"sign up",
			"create account",
			"log in",
			"login",
			"continue with google",
			"continue with apple",
		},
	}
}

// IsAuthPage checks the current URL and rendered content for authentication
// surfaces. The URL match alone is sufficient; content markers catch auth
// interstitials served under normal paths.
func (g *AuthGuard) IsAuthPage(url, content string) bool {
	if g.urlPattern.MatchString(url) {
		return true
	}
	lowered := strings.ToLower(content)
	for _, marker := range g.pageMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// IsAuthTarget checks a model-proposed action target against the blocked
// phrase list, case-insensitively
func (g *AuthGuard) IsAuthTarget(target string) bool {
	if target == "" {
		return false
	}
	lowered := strings.ToLower(target)
	for _, marker := range g.targetMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
