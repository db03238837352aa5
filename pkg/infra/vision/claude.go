package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m-mizutani/goerr/v2"

	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

// newClaude builds the Anthropic variant. Claude retries 429s and
// overloaded responses up to 3 attempts; a 400 mentioning credit balance is
// a billing failure and never retried.
func newClaude(cfg Config) *client {
	sdk := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	invoke := func(ctx context.Context, image []byte, prompt string) (string, error) {
		msg, err := sdk.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(cfg.Model),
			MaxTokens: maxOutputTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewImageBlockBase64("image/png", base64.StdEncoding.EncodeToString(image)),
					anthropic.NewTextBlock(prompt),
				),
			},
		})
		if err != nil {
			return "", err
		}
		for _, block := range msg.Content {
			if block.Type == "text" {
				return block.Text, nil
			}
		}
		return "", goerr.Wrap(errEmptyResponse, "claude returned no text block")
	}

	return &client{
		provider:      types.ProviderClaude,
		policy:        retryPolicy{maxAttempts: 3, baseDelay: backoffBase, maxDelay: backoffCeiling},
		callDelay:     cfg.CallDelay,
		quotaGuidance: "Anthropic credit balance is too low. Add credits: https://console.anthropic.com/settings/plans",
		sleep:         contextSleep,
		invoke:        invoke,
		classify:      classifyClaude,
	}
}

func classifyClaude(err error) errClass {
	var apierr *anthropic.Error
	if !errors.As(err, &apierr) {
		return classifyByText(err)
	}

	switch {
	case apierr.StatusCode == http.StatusTooManyRequests:
		return classThrottled
	case apierr.StatusCode == 529 || apierr.StatusCode >= http.StatusInternalServerError:
		return classUnavailable
	case apierr.StatusCode == http.StatusBadRequest &&
		containsAny(strings.ToLower(apierr.Error()), "credit balance", "too low", "billing"):
		return classQuota
	default:
		return classFatal
	}
}
