package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/a4kulshr/github-navigator/pkg/domain/model"
	"github.com/a4kulshr/github-navigator/pkg/domain/types"
	"github.com/a4kulshr/github-navigator/pkg/usecase"
)

// fakeSession is a scriptable BrowserSession that records every call
type fakeSession struct {
	url        string
	content    string
	screenshot []byte

	navigations []string
	clicks      []model.Coordinates
	typed       []string
	keys        []string
	scrolls     [][2]int

	navigateErr error
	clickErr    error
}

func newFakeSession(url string) *fakeSession {
	return &fakeSession{url: url, screenshot: []byte("png")}
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.navigations = append(s.navigations, url)
	if s.navigateErr != nil {
		return s.navigateErr
	}
	s.url = url
	return nil
}

func (s *fakeSession) Screenshot(ctx context.Context) ([]byte, error) {
	return s.screenshot, nil
}

func (s *fakeSession) Click(ctx context.Context, x, y float64) error {
	s.clicks = append(s.clicks, model.Coordinates{X: x, Y: y})
	return s.clickErr
}

func (s *fakeSession) TypeText(ctx context.Context, text string) error {
	s.typed = append(s.typed, text)
	return nil
}

func (s *fakeSession) PressKey(ctx context.Context, key string) error {
	s.keys = append(s.keys, key)
	return nil
}

func (s *fakeSession) Scroll(ctx context.Context, dx, dy int) error {
	s.scrolls = append(s.scrolls, [2]int{dx, dy})
	return nil
}

func (s *fakeSession) CurrentURL(ctx context.Context) (string, error) { return s.url, nil }
func (s *fakeSession) Content(ctx context.Context) (string, error)    { return s.content, nil }

func (s *fakeSession) WaitSettled(ctx context.Context, timeout time.Duration) error { return nil }
func (s *fakeSession) Close() error                                                { return nil }

// fakeVision replays scripted responses; once exhausted it repeats the last
type fakeVision struct {
	responses []string
	prompts   []string
	err       error
}

func (v *fakeVision) Analyze(ctx context.Context, image []byte, prompt string) (string, error) {
	v.prompts = append(v.prompts, prompt)
	if v.err != nil {
		return "", v.err
	}
	idx := len(v.prompts) - 1
	if idx >= len(v.responses) {
		idx = len(v.responses) - 1
	}
	return v.responses[idx], nil
}

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func TestNavigator_SearchClickExtract(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"action_type": "click", "target": "search box", "coordinates": [640, 40], "confidence": 0.9, "reasoning": "focus the search box"}`,
		`{"action_type": "type", "target": "search box", "value": "openclaw/openclaw", "confidence": 0.9, "reasoning": "search for the repository"}`,
		`{"action_type": "done", "value": {"version": "v2026.1.29", "tag": "77e703c", "author": "steipete", "found": true}, "confidence": 0.95, "reasoning": "release information extracted"}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	report, err := nav.Navigate(ctx, &model.NavigationRequest{
		StartURL:   "https://github.com",
		Repository: "openclaw/openclaw",
	})
	gt.NoError(t, err)

	gt.Equal(t, report.Repository, "openclaw/openclaw")
	gt.Value(t, report.LatestRelease).NotNil()
	gt.Equal(t, report.LatestRelease.Version, "v2026.1.29")
	gt.Equal(t, report.LatestRelease.Tag, "77e703c")
	gt.Equal(t, report.LatestRelease.Author, "steipete")

	// The scripted interactions all reached the browser
	gt.Equal(t, session.navigations, []string{"https://github.com"})
	gt.Equal(t, session.clicks, []model.Coordinates{{X: 640, Y: 40}})
	gt.Equal(t, session.typed, []string{"openclaw/openclaw"})
	gt.Equal(t, session.keys, []string{"Enter"})
	gt.Number(t, len(vision.prompts)).Equal(3)

	// Completed steps flow into the next prompt's history window, and the
	// model always sees where it currently is
	gt.String(t, vision.prompts[0]).Contains("CURRENT URL: https://github.com")
	gt.String(t, vision.prompts[1]).Contains("Step 1: click on 'search box' - success")
	gt.String(t, vision.prompts[2]).Contains("Step 2: type on 'search box' - success")
}

func TestNavigator_BlockedAuthClick(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"action_type": "click", "target": "Sign in", "coordinates": [1200, 30], "confidence": 0.8, "reasoning": "maybe we need an account"}`,
		`{"action_type": "done", "value": {"version": "v1.0.0", "tag": "abc1234", "author": "alice", "found": true}}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	report, err := nav.Navigate(ctx, &model.NavigationRequest{StartURL: "https://github.com"})
	gt.NoError(t, err)
	gt.Equal(t, report.LatestRelease.Version, "v1.0.0")

	// The auth click never reached the browser and the veto is visible to
	// the model on the next step
	gt.Number(t, len(session.clicks)).Equal(0)
	gt.String(t, vision.prompts[1]).Contains("Step 1: blocked auth click on 'Sign in'")
}

func TestNavigator_StepBudgetExhausted(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"action_type": "wait", "reasoning": "page still loading"}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	_, err = nav.Navigate(ctx, &model.NavigationRequest{StartURL: "https://github.com"})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrGoalNotAchieved))

	// Exactly the default budget of inference calls, not one more
	gt.Number(t, len(vision.prompts)).Equal(20)
}

func TestNavigator_AuthPageRecovery(t *testing.T) {
	ctx := context.Background()

	// The start URL lands on a login wall
	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"action_type": "done", "value": {"version": "v1.0.0", "tag": "abc1234", "author": "alice", "found": true}}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	report, err := nav.Navigate(ctx, &model.NavigationRequest{
		StartURL:   "https://github.com/login",
		Repository: "openclaw/openclaw",
	})
	gt.NoError(t, err)
	gt.Value(t, report.LatestRelease).NotNil()

	// The auth page was handled without consulting the model, by fleeing
	// to the repository page
	gt.Equal(t, session.navigations, []string{
		"https://github.com/login",
		"https://github.com/openclaw/openclaw",
	})
	gt.Number(t, len(vision.prompts)).Equal(1)
	gt.String(t, vision.prompts[0]).Contains("Detected auth page; navigated away")
}

func TestNavigator_DoneWithoutValue(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"action_type": "done", "reasoning": "I believe we are finished"}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	_, err = nav.Navigate(ctx, &model.NavigationRequest{StartURL: "https://github.com"})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrGoalNotAchieved))
}

func TestNavigator_RawValueFallback(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"action_type": "done", "value": "latest release is v1.2.3 by alice"}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	report, err := nav.Navigate(ctx, &model.NavigationRequest{StartURL: "https://github.com"})
	gt.NoError(t, err)
	gt.Value(t, report.LatestRelease).Nil()
	gt.Equal(t, report.RawData, "latest release is v1.2.3 by alice")
}

func TestNavigator_ReleasesPageExtractMode(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"version": "v2026.1.29", "tag": "77e703c", "author": "steipete", "publish_date": null, "release_notes": null, "found": true}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	report, err := nav.Navigate(ctx, &model.NavigationRequest{
		StartURL:   "https://github.com/openclaw/openclaw/releases",
		Repository: "openclaw/openclaw",
	})
	gt.NoError(t, err)
	gt.Equal(t, report.LatestRelease.Version, "v2026.1.29")

	// On a releases URL the loop goes straight to extraction
	gt.Number(t, len(vision.prompts)).Equal(1)
	gt.String(t, vision.prompts[0]).Contains("extract the release information")
}

func TestNavigator_ReleasesExtractionIncomplete(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{responses: []string{
		`{"found": false}`,
		`{"version": "v1.0.0", "tag": "abc1234", "author": "alice", "found": true}`,
	}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	report, err := nav.Navigate(ctx, &model.NavigationRequest{
		StartURL:   "https://github.com/alice/tool/releases",
		Repository: "alice/tool",
	})
	gt.NoError(t, err)
	gt.Equal(t, report.LatestRelease.Version, "v1.0.0")

	// An incomplete extraction consumes the whole step: one inference per
	// cycle, and both calls stay in extract mode
	gt.Number(t, len(vision.prompts)).Equal(2)
	gt.String(t, vision.prompts[0]).Contains("extract the release information")
	gt.String(t, vision.prompts[1]).Contains("extract the release information")
}

func TestNavigator_StartPageLoadFailure(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	session.navigateErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	vision := &fakeVision{responses: []string{`{"action_type": "wait"}`}}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	_, err = nav.Navigate(ctx, &model.NavigationRequest{StartURL: "https://github.com"})
	gt.Error(t, err)
	gt.Number(t, len(vision.prompts)).Equal(0)
}

func TestNavigator_VisionErrorPropagates(t *testing.T) {
	ctx := context.Background()

	session := newFakeSession("about:blank")
	vision := &fakeVision{err: errors.New("quota exceeded")}

	nav, err := usecase.NewNavigator(session, vision,
		usecase.WithNavigatorSleep(noSleep),
	)
	gt.NoError(t, err)

	_, err = nav.Navigate(ctx, &model.NavigationRequest{StartURL: "https://github.com"})
	gt.Error(t, err)
	gt.Number(t, len(vision.prompts)).Equal(1)
}
