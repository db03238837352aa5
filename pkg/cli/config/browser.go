package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Browser holds browser session configuration
type Browser struct {
	Headless   bool
	NavTimeout time.Duration
}

// Flags returns CLI flags for browser configuration
func (c *Browser) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "headless",
			Usage:       "Run the browser without a visible window",
			Value:       true,
			Destination: &c.Headless,
			Sources:     cli.EnvVars("GHNAV_HEADLESS"),
		},
		&cli.DurationFlag{
			Name:        "nav-timeout",
			Usage:       "Page load timeout",
			Value:       60 * time.Second,
			Destination: &c.NavTimeout,
			Sources:     cli.EnvVars("GHNAV_NAV_TIMEOUT"),
		},
	}
}
