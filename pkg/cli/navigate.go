package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/a4kulshr/github-navigator/pkg/cli/config"
	"github.com/a4kulshr/github-navigator/pkg/domain/model"
	"github.com/a4kulshr/github-navigator/pkg/infra/artifact"
	"github.com/a4kulshr/github-navigator/pkg/infra/browser"
	"github.com/a4kulshr/github-navigator/pkg/infra/vision"
	"github.com/a4kulshr/github-navigator/pkg/usecase"
)

func cmdNavigate() *cli.Command {
	var (
		browserCfg   config.Browser
		inferenceCfg config.Inference
		navCfg       config.Navigator
		configPath   string
	)

	flags := append(browserCfg.Flags(), inferenceCfg.Flags()...)
	flags = append(flags, navCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "config",
		Usage:       "TOML defaults file (flags and env vars take precedence)",
		Destination: &configPath,
		Sources:     cli.EnvVars("GHNAV_CONFIG"),
	})

	return &cli.Command{
		Name:    "navigate",
		Aliases: []string{"n"},
		Usage:   "Navigate to a repository's release page and extract release metadata",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if configPath != "" {
				defaults, err := config.LoadDefaults(configPath)
				if err != nil {
					return err
				}
				defaults.Apply(c, &inferenceCfg, &navCfg)
			}

			provider, err := inferenceCfg.ResolveProvider()
			if err != nil {
				return err
			}
			apiKey, err := inferenceCfg.APIKey(provider)
			if err != nil {
				return err
			}

			logger.Info("starting navigation",
				slog.String("provider", provider.String()),
				slog.String("repository", navCfg.Repository),
				slog.String("start_url", navCfg.StartURL),
			)

			visionClient, err := vision.New(ctx, vision.Config{
				Provider:  provider,
				Model:     inferenceCfg.Model,
				APIKey:    apiKey,
				CallDelay: inferenceCfg.CallDelay,
			})
			if err != nil {
				return err
			}

			// An unrecoverable browser launch failure is fatal by design.
			sessionCfg := browser.DefaultConfig()
			sessionCfg.Headless = browserCfg.Headless
			sessionCfg.NavTimeout = browserCfg.NavTimeout
			session, err := browser.New(ctx, sessionCfg)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := session.Close(); cerr != nil {
					logger.Warn("failed to close browser session", "error", cerr)
				}
			}()

			opts := []usecase.NavigatorOption{
				usecase.WithMaxSteps(navCfg.MaxSteps),
			}
			if navCfg.Debug {
				sink, err := artifact.NewWriter(navCfg.ScreenshotDir)
				if err != nil {
					return err
				}
				opts = append(opts, usecase.WithScreenshotSink(sink))
			}

			navigator, err := usecase.NewNavigator(session, visionClient, opts...)
			if err != nil {
				return err
			}

			report, err := navigator.Navigate(ctx, &model.NavigationRequest{
				StartURL:   navCfg.StartURL,
				Goal:       navCfg.Goal,
				Repository: navCfg.Repository,
			})
			if err != nil {
				return err
			}

			return writeReport(ctx, report, navCfg.Output)
		},
	}
}

// writeReport serializes the report and writes the output document
func writeReport(ctx context.Context, report *model.ReleaseReport, path string) error {
	logger := ctxlog.From(ctx)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to serialize report")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write output document", goerr.V("path", path))
	}

	logger.Info("release information extracted", slog.String("output", path))
	color.Green("Extracted release information:")
	fmt.Println(string(data))
	color.Cyan("Saved to: %s", path)
	return nil
}
