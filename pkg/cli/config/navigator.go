package config

import "github.com/urfave/cli/v3"

// Navigator holds navigation session configuration
type Navigator struct {
	StartURL      string
	Repository    string
	Goal          string
	MaxSteps      int
	Output        string
	Debug         bool
	ScreenshotDir string
}

// Flags returns CLI flags for navigator configuration
func (c *Navigator) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Starting URL",
			Value:       "https://github.com",
			Destination: &c.StartURL,
			Sources:     cli.EnvVars("GHNAV_START_URL"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository to find (e.g. 'openclaw/openclaw')",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GHNAV_REPO"),
		},
		&cli.StringFlag{
			Name:        "goal",
			Usage:       "Free-text navigation goal override",
			Destination: &c.Goal,
		},
		&cli.IntFlag{
			Name:        "max-steps",
			Usage:       "Step budget before the session is declared failed",
			Value:       20,
			Destination: &c.MaxSteps,
			Sources:     cli.EnvVars("GHNAV_MAX_STEPS"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file path",
			Value:       "output.json",
			Destination: &c.Output,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "Save per-step screenshots",
			Destination: &c.Debug,
			Sources:     cli.EnvVars("GHNAV_DEBUG"),
		},
		&cli.StringFlag{
			Name:        "screenshot-dir",
			Usage:       "Directory for debug screenshots",
			Value:       "screenshots",
			Destination: &c.ScreenshotDir,
			Sources:     cli.EnvVars("GHNAV_SCREENSHOT_DIR"),
		},
	}
}
