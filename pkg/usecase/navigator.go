package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/a4kulshr/github-navigator/pkg/domain/interfaces"
	"github.com/a4kulshr/github-navigator/pkg/domain/model"
	"github.com/a4kulshr/github-navigator/pkg/domain/types"
	"github.com/a4kulshr/github-navigator/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultMaxSteps      = 20
	defaultHistoryWindow = 5
	defaultFallbackURL   = "https://github.com"
	stepPacingDelay      = 1 * time.Second
	blockedPacingDelay   = 500 * time.Millisecond
)

// Navigator runs the perceive-decide-act state machine. It is the sole
// caller of the browser session, the vision client, the guard, the parser,
// and the executor; one Navigator drives exactly one session.
type Navigator struct {
	session  interfaces.BrowserSession
	vision   interfaces.VisionClient
	guard    *AuthGuard
	executor *ActionExecutor
	prompts  *PromptBuilder

	maxSteps      int
	historyWindow int
	fallbackURL   string
	sleep         SleepFunc
	screenshots   interfaces.ScreenshotSink
}

// NavigatorOption configures a Navigator
type NavigatorOption func(*Navigator)

// WithMaxSteps overrides the step budget
func WithMaxSteps(n int) NavigatorOption {
	return func(nav *Navigator) {
		if n > 0 {
			nav.maxSteps = n
		}
	}
}

// WithFallbackURL overrides where auth-page recovery navigates to when no
// repository is known
func WithFallbackURL(url string) NavigatorOption {
	return func(nav *Navigator) {
		nav.fallbackURL = url
	}
}

// WithNavigatorSleep overrides the pacing sleep between steps
func WithNavigatorSleep(fn SleepFunc) NavigatorOption {
	return func(nav *Navigator) {
		nav.sleep = fn
	}
}

// WithScreenshotSink attaches a debug sink that receives every step's
// screenshot
func WithScreenshotSink(sink interfaces.ScreenshotSink) NavigatorOption {
	return func(nav *Navigator) {
		nav.screenshots = sink
	}
}

// NewNavigator wires the navigation loop together
func NewNavigator(
	session interfaces.BrowserSession,
	vision interfaces.VisionClient,
	opts ...NavigatorOption,
) (interfaces.NavigatorUseCase, error) {
	prompts, err := NewPromptBuilder()
	if err != nil {
		return nil, err
	}

	nav := &Navigator{
		session:       session,
		vision:        vision,
		guard:         NewAuthGuard(),
		prompts:       prompts,
		maxSteps:      defaultMaxSteps,
		historyWindow: defaultHistoryWindow,
		fallbackURL:   defaultFallbackURL,
		sleep:         ContextSleep,
	}
	for _, opt := range opts {
		opt(nav)
	}
	nav.executor = NewActionExecutor(session, WithExecutorSleep(nav.sleep))

	return nav, nil
}

// Navigate runs the session to completion. Only quota-class provider
// failures, retry exhaustion, and start-page load failures propagate;
// everything else is absorbed into history and the loop continues.
func (n *Navigator) Navigate(ctx context.Context, req *model.NavigationRequest) (*model.ReleaseReport, error) {
	logger := ctxlog.From(ctx)

	if err := n.session.Navigate(ctx, req.StartURL); err != nil {
		return nil, goerr.Wrap(err, "failed to load start URL", goerr.V("url", req.StartURL))
	}
	logger.Info("navigation started",
		"start_url", req.StartURL,
		"repository", req.Repository,
		"max_steps", n.maxSteps,
	)

	goal := req.DefaultGoal()
	state := model.NewNavigationState()

	for state.StepCount < n.maxSteps {
		state.StepCount++

		report, done, err := n.step(ctx, req, goal, state)
		if err != nil {
			return nil, err
		}
		if done {
			return report, nil
		}
	}

	logger.Warn("step budget exhausted without achieving goal", "steps", state.StepCount)
	return nil, goerr.Wrap(types.ErrGoalNotAchieved, "step budget exhausted",
		goerr.V("steps", state.StepCount),
	)
}

// step executes one perceive-decide-act cycle. It returns done=true with a
// report when the session reached a terminal extraction.
func (n *Navigator) step(ctx context.Context, req *model.NavigationRequest, goal string, state *model.NavigationState) (*model.ReleaseReport, bool, error) {
	logger := ctxlog.From(ctx)

	url, err := n.session.CurrentURL(ctx)
	if err != nil {
		logger.Warn("failed to read current URL", "error", err)
	}
	state.CurrentURL = url

	// Pre-emptive guard: recover from auth pages without consulting the
	// model at all.
	content, err := n.session.Content(ctx)
	if err != nil {
		logger.Debug("failed to read page content", "error", err)
	}
	if n.guard.IsAuthPage(url, content) {
		logger.Warn("authentication surface detected, navigating away", "url", url)
		if err := n.session.Navigate(ctx, n.recoveryURL(req)); err != nil {
			logger.Warn("auth recovery navigation failed", "error", err)
		}
		state.Append("Detected auth page; navigated away")
		_ = n.sleep(ctx, stepPacingDelay)
		return nil, false, nil
	}

	screenshot, err := n.session.Screenshot(ctx)
	if err != nil {
		logger.Warn("screenshot capture failed", "error", err)
		state.Append(fmt.Sprintf("Step %d: screenshot failed", state.StepCount))
		_ = n.sleep(ctx, stepPacingDelay)
		return nil, false, nil
	}
	n.saveScreenshot(ctx, state.StepCount, screenshot)

	// On a releases page, go straight to extraction mode. The extraction is
	// this step's one inference; an incomplete payload ends the step.
	if strings.Contains(url, "/releases") {
		report, ok, err := n.tryExtract(ctx, req, state, screenshot)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return report, true, nil
		}
		_ = n.sleep(ctx, stepPacingDelay)
		return nil, false, nil
	}

	prompt, err := n.prompts.DecideAction(goal, state.CurrentURL, state.Recent(n.historyWindow))
	if err != nil {
		return nil, false, err
	}
	response, err := n.vision.Analyze(ctx, screenshot, prompt)
	if err != nil {
		return nil, false, err
	}

	action := ParseAction(ctx, response)
	logger.Info("action decided",
		"step", state.StepCount,
		"kind", action.Kind,
		"target", action.Target,
		"confidence", action.Confidence,
		"reasoning", action.Reasoning,
	)

	if action.Kind.IsTerminal() {
		report, err := n.finishFromAction(ctx, req, state, action)
		if err != nil {
			return nil, false, err
		}
		return report, true, nil
	}

	// Veto: the model proposed interacting with an auth surface.
	if action.Kind == model.ActionClick && n.guard.IsAuthTarget(action.Target) {
		logger.Warn("blocked auth-surface click", "target", action.Target)
		state.Append(fmt.Sprintf("Step %d: blocked auth click on '%s'", state.StepCount, action.Target))
		_ = n.sleep(ctx, blockedPacingDelay)
		return nil, false, nil
	}

	outcome := "failed"
	if n.executor.Execute(ctx, action) {
		outcome = "success"
	}
	state.Append(action.Summary(state.StepCount, outcome))

	_ = n.sleep(ctx, stepPacingDelay)
	return nil, false, nil
}

// tryExtract runs an extract-mode inference against the current screenshot.
// ok=true only when the payload decodes and the model confirmed the release
// information is present.
func (n *Navigator) tryExtract(ctx context.Context, req *model.NavigationRequest, state *model.NavigationState, screenshot []byte) (*model.ReleaseReport, bool, error) {
	logger := ctxlog.From(ctx)

	response, err := n.vision.Analyze(ctx, screenshot, n.prompts.ExtractRelease())
	if err != nil {
		return nil, false, err
	}

	payload, ok := DecodeExtraction(response)
	if !ok || !payload.Found {
		logger.Debug("releases page extraction incomplete", "step", state.StepCount)
		state.Append(fmt.Sprintf("Step %d: releases page extraction incomplete", state.StepCount))
		return nil, false, nil
	}

	state.MarkAchieved()
	logger.Info("release information extracted", "step", state.StepCount)
	return FormatRelease(payload, req.Repository), true, nil
}

// finishFromAction handles a terminal done/extract action. A decodable value
// yields the canonical report; a non-JSON value is preserved raw; no value
// at all means the goal was not achieved.
func (n *Navigator) finishFromAction(ctx context.Context, req *model.NavigationRequest, state *model.NavigationState, action *model.NavigationAction) (*model.ReleaseReport, error) {
	logger := ctxlog.From(ctx)

	if action.Value == "" {
		logger.Warn("model reported done without extracted data")
		return nil, goerr.Wrap(types.ErrGoalNotAchieved, "terminal action carried no extraction payload")
	}

	state.MarkAchieved()
	if payload, ok := DecodeExtraction(action.Value); ok {
		logger.Info("release information extracted", "step", state.StepCount)
		return FormatRelease(payload, req.Repository), nil
	}

	logger.Warn("extraction payload is not valid JSON, keeping raw value")
	return RawReport(action.Value), nil
}

// recoveryURL picks where to flee when an auth surface is detected: the
// known repository when there is one, otherwise the fallback.
func (n *Navigator) recoveryURL(req *model.NavigationRequest) string {
	if req.Repository != "" {
		return "https://github.com/" + req.Repository
	}
	return n.fallbackURL
}

// saveScreenshot hands the capture to the debug sink without blocking the
// loop. Sink failures are logged by the dispatcher and otherwise ignored.
func (n *Navigator) saveScreenshot(ctx context.Context, step int, image []byte) {
	if n.screenshots == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return n.screenshots.Save(ctx, step, image)
	})
}
