package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/a4kulshr/github-navigator/pkg/cli/config"
	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
		flush     = func() {}
	)

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "github-navigator",
		Usage:   "Autonomous GitHub release navigation with vision models",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			flush, err = sentryCfg.Configure()
			if err != nil {
				return nil, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdNavigate(),
		},
	}

	err := app.Run(ctx, args)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("navigation failed", slog.Any("error", err))
		sentryCfg.Capture(err)
	}
	flush()

	return err
}
