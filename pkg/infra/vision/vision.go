// Package vision implements the vision-capable inference providers. Each
// provider variant owns its request shape, error classification, and backoff
// table; the shared engine here owns the retry loop and rate pacing.
package vision

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/a4kulshr/github-navigator/pkg/domain/interfaces"
	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

const (
	maxOutputTokens = 1024

	defaultCallDelay = 2 * time.Second
	backoffBase      = 5 * time.Second
	backoffCeiling   = 120 * time.Second

	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// Config selects and parameterizes a provider variant. It is resolved once
// at startup and never mutated during navigation.
type Config struct {
	Provider  types.Provider
	Model     string
	APIKey    string
	BaseURL   string        // only meaningful for OpenAI-compatible variants
	CallDelay time.Duration // fixed pacing before every inference call
}

// New constructs the vision client for the configured provider variant
func New(ctx context.Context, cfg Config) (interfaces.VisionClient, error) {
	if cfg.APIKey == "" {
		return nil, goerr.New("API key is required", goerr.V("provider", cfg.Provider))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if cfg.CallDelay <= 0 {
		cfg.CallDelay = defaultCallDelay
	}

	switch cfg.Provider {
	case types.ProviderClaude:
		return newClaude(cfg), nil
	case types.ProviderGPT4V:
		return newOpenAI(cfg), nil
	case types.ProviderOpenRouter:
		if cfg.BaseURL == "" {
			cfg.BaseURL = openRouterBaseURL
		}
		return newOpenAI(cfg), nil
	case types.ProviderGemini:
		return newGemini(ctx, cfg)
	default:
		return nil, goerr.New("unknown vision provider", goerr.V("provider", cfg.Provider))
	}
}

// DefaultModel returns the model identifier used when none is configured
func DefaultModel(p types.Provider) string {
	switch p {
	case types.ProviderClaude:
		return "claude-sonnet-4-20250514"
	case types.ProviderGPT4V:
		return "gpt-4o"
	case types.ProviderGemini:
		return "gemini-2.0-flash"
	case types.ProviderOpenRouter:
		return "anthropic/claude-3.5-sonnet"
	default:
		return ""
	}
}

// errClass buckets provider failures for the retry engine
type errClass int

const (
	classThrottled errClass = iota // transient rate limit: retry with backoff
	classUnavailable               // overloaded/5xx: retry with backoff
	classQuota                     // exhausted allowance: never retry
	classFatal                     // bad request or unknown: never retry
)

type sleepFunc func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryPolicy is a provider's backoff table
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// backoff computes the delay before the next attempt. An explicit
// "retry in N s" directive embedded in the error wins over the exponential
// schedule, capped at the policy ceiling.
func (p retryPolicy) backoff(attempt int, err error) time.Duration {
	if hint, ok := retryAfterHint(err); ok {
		if hint > p.maxDelay {
			return p.maxDelay
		}
		return hint
	}
	d := p.baseDelay << attempt
	if d > p.maxDelay {
		return p.maxDelay
	}
	return d
}

var retryAfterPattern = regexp.MustCompile(`(?i)retry in (\d+(?:\.\d+)?)\s*s`)

func retryAfterHint(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	m := retryAfterPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	secs, perr := strconv.ParseFloat(m[1], 64)
	if perr != nil {
		return 0, false
	}
	return time.Duration(math.Ceil(secs)+1) * time.Second, true
}

// client is the shared engine behind every provider variant
type client struct {
	provider      types.Provider
	policy        retryPolicy
	callDelay     time.Duration
	quotaGuidance string
	// quotaOnExhaust marks providers whose persistent throttling means the
	// allowance is gone, not that the service is busy.
	quotaOnExhaust bool
	sleep          sleepFunc
	invoke         func(ctx context.Context, image []byte, prompt string) (string, error)
	classify       func(err error) errClass
}

var _ interfaces.VisionClient = (*client)(nil)

// Analyze sends one screenshot and prompt to the provider. Throttling and
// unavailability are retried per the provider's backoff table; quota and
// bad-request failures surface immediately.
func (c *client) Analyze(ctx context.Context, image []byte, prompt string) (string, error) {
	logger := ctxlog.From(ctx)

	// Fixed inter-call pacing, independent of retries, to stay under
	// steady-state rate budgets.
	if err := c.sleep(ctx, c.callDelay); err != nil {
		return "", err
	}

	var lastErr error
	lastClass := classThrottled
	for attempt := 0; attempt < c.policy.maxAttempts; attempt++ {
		text, err := c.invoke(ctx, image, prompt)
		if err == nil {
			return text, nil
		}

		switch class := c.classify(err); class {
		case classThrottled, classUnavailable:
			lastErr = err
			lastClass = class
			if attempt == c.policy.maxAttempts-1 {
				break
			}
			delay := c.policy.backoff(attempt, err)
			logger.Warn("vision provider throttled, backing off",
				"provider", c.provider,
				"attempt", attempt+1,
				"max_attempts", c.policy.maxAttempts,
				"delay", delay,
			)
			if serr := c.sleep(ctx, delay); serr != nil {
				return "", serr
			}
		case classQuota:
			return "", goerr.Wrap(err, c.quotaGuidance,
				goerr.T(types.ErrTagQuotaExceeded),
				goerr.V("provider", c.provider),
			)
		default:
			return "", goerr.Wrap(err, "vision inference failed",
				goerr.T(types.ErrTagBadRequest),
				goerr.V("provider", c.provider),
			)
		}
	}

	if c.quotaOnExhaust {
		return "", goerr.Wrap(lastErr, c.quotaGuidance,
			goerr.T(types.ErrTagQuotaExceeded),
			goerr.V("provider", c.provider),
			goerr.V("attempts", c.policy.maxAttempts),
		)
	}
	tag := types.ErrTagRateLimited
	if lastClass == classUnavailable {
		tag = types.ErrTagUnavailable
	}
	return "", goerr.Wrap(lastErr, "vision provider retries exhausted",
		goerr.T(tag),
		goerr.V("provider", c.provider),
		goerr.V("attempts", c.policy.maxAttempts),
	)
}

// IsQuotaError reports whether the error is a quota/billing-class failure
// that must terminate the process
func IsQuotaError(err error) bool {
	return goerr.HasTag(err, types.ErrTagQuotaExceeded)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// classifyByText is the fallback used when an error does not carry a typed
// API error value. Matches the signal words providers embed in messages.
func classifyByText(err error) errClass {
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "insufficient_quota", "billing", "credit balance"):
		return classQuota
	case containsAny(msg, "429", "rate limit", "resource_exhausted", "quota"):
		return classThrottled
	case containsAny(msg, "503", "overloaded", "unavailable"):
		return classUnavailable
	default:
		return classFatal
	}
}

var errEmptyResponse = errors.New("provider returned empty response")
