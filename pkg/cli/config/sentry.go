package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

// Sentry holds crash reporting configuration. Only fatal (propagated)
// errors are captured; absorbed failures never reach Sentry.
type Sentry struct {
	DSN string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for crash reporting (disabled when empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("GHNAV_SENTRY_DSN"),
		},
	}
}

// Configure initializes the Sentry SDK. Returns a flush function; both are
// no-ops when no DSN is configured.
func (c *Sentry) Configure() (func(), error) {
	if c.DSN == "" {
		return func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:     c.DSN,
		Release: types.Version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// Capture reports a fatal error when Sentry is enabled
func (c *Sentry) Capture(err error) {
	if c.DSN == "" || err == nil {
		return
	}
	sentry.CaptureException(err)
}
