package usecase

import (
	"context"
	"time"

	"github.com/a4kulshr/github-navigator/pkg/domain/interfaces"
	"github.com/a4kulshr/github-navigator/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

const (
	defaultSettleTimeout = 10 * time.Second
	typeSubmitPause      = 500 * time.Millisecond
	waitActionDuration   = 2 * time.Second
	scrollDelta          = 500
)

// SleepFunc suspends for the given duration, honoring context cancellation.
// Injected in tests to keep them fast.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep is the production SleepFunc
func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ActionExecutor translates typed actions into browser session calls. Every
// browser failure is converted into a false result; nothing propagates past
// this boundary.
type ActionExecutor struct {
	session       interfaces.BrowserSession
	settleTimeout time.Duration
	sleep         SleepFunc
}

// ExecutorOption configures an ActionExecutor
type ExecutorOption func(*ActionExecutor)

// WithSettleTimeout overrides the post-interaction settle wait ceiling
func WithSettleTimeout(d time.Duration) ExecutorOption {
	return func(e *ActionExecutor) {
		e.settleTimeout = d
	}
}

// WithExecutorSleep overrides the sleep function
func WithExecutorSleep(fn SleepFunc) ExecutorOption {
	return func(e *ActionExecutor) {
		e.sleep = fn
	}
}

// NewActionExecutor creates an executor bound to one browser session
func NewActionExecutor(session interfaces.BrowserSession, opts ...ExecutorOption) *ActionExecutor {
	e := &ActionExecutor{
		session:       session,
		settleTimeout: defaultSettleTimeout,
		sleep:         ContextSleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute performs one action and reports whether it succeeded. Terminal
// actions (extract, done) are no-ops here; the navigation loop handles them.
func (e *ActionExecutor) Execute(ctx context.Context, action *model.NavigationAction) bool {
	logger := ctxlog.From(ctx)

	logger.Debug("executing action",
		"kind", action.Kind,
		"target", action.Target,
		"reasoning", action.Reasoning,
	)

	switch action.Kind {
	case model.ActionClick:
		return e.executeClick(ctx, action)
	case model.ActionType:
		return e.executeType(ctx, action)
	case model.ActionScroll:
		return e.executeScroll(ctx, action)
	case model.ActionWait:
		return e.sleep(ctx, waitActionDuration) == nil
	case model.ActionExtract, model.ActionDone:
		return true
	default:
		logger.Warn("refusing to execute unknown action kind", "kind", action.Kind)
		return false
	}
}

func (e *ActionExecutor) executeClick(ctx context.Context, action *model.NavigationAction) bool {
	logger := ctxlog.From(ctx)

	if action.Coordinates == nil {
		logger.Warn("click action missing coordinates", "target", action.Target)
		return false
	}

	if err := e.session.Click(ctx, action.Coordinates.X, action.Coordinates.Y); err != nil {
		logger.Warn("click failed",
			"error", err,
			"x", action.Coordinates.X,
			"y", action.Coordinates.Y,
		)
		return false
	}

	// A settle timeout is not a failure: the click itself landed and the
	// page may simply never go idle.
	if err := e.session.WaitSettled(ctx, e.settleTimeout); err != nil {
		logger.Debug("page did not settle after click", "error", err)
	}
	return true
}

func (e *ActionExecutor) executeType(ctx context.Context, action *model.NavigationAction) bool {
	logger := ctxlog.From(ctx)

	if action.Value == "" {
		logger.Warn("type action missing text", "target", action.Target)
		return false
	}

	if err := e.session.TypeText(ctx, action.Value); err != nil {
		logger.Warn("typing failed", "error", err)
		return false
	}
	if err := e.sleep(ctx, typeSubmitPause); err != nil {
		return false
	}
	if err := e.session.PressKey(ctx, "Enter"); err != nil {
		logger.Warn("submit failed", "error", err)
		return false
	}
	if err := e.session.WaitSettled(ctx, e.settleTimeout); err != nil {
		logger.Debug("page did not settle after submit", "error", err)
	}
	return true
}

func (e *ActionExecutor) executeScroll(ctx context.Context, action *model.NavigationAction) bool {
	logger := ctxlog.From(ctx)

	delta := scrollDelta
	if action.Value == "up" {
		delta = -scrollDelta
	}
	if err := e.session.Scroll(ctx, 0, delta); err != nil {
		logger.Warn("scroll failed", "error", err)
		return false
	}
	return true
}
