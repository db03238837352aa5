package vision

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

// newGemini builds the Gemini variant. Gemini's 429 responses often embed a
// long "retry in Ns" directive, so it gets a higher retry ceiling than the
// other providers and its backoff honors the embedded hint.
func newGemini(ctx context.Context, cfg Config) (*client, error) {
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gemini client")
	}

	invoke := func(ctx context.Context, image []byte, prompt string) (string, error) {
		contents := []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromBytes(image, "image/png"),
				genai.NewPartFromText(prompt),
			}, genai.RoleUser),
		}
		resp, err := sdk.Models.GenerateContent(ctx, cfg.Model, contents, &genai.GenerateContentConfig{
			MaxOutputTokens: maxOutputTokens,
		})
		if err != nil {
			return "", err
		}
		if text := resp.Text(); text != "" {
			return text, nil
		}
		return "", goerr.Wrap(errEmptyResponse, "gemini returned empty response")
	}

	return &client{
		provider:       types.ProviderGemini,
		policy:         retryPolicy{maxAttempts: 5, baseDelay: backoffBase, maxDelay: backoffCeiling},
		callDelay:      cfg.CallDelay,
		quotaGuidance:  "Gemini quota may be exceeded (free tier daily limit). Check billing: https://ai.google.dev/gemini-api/docs/rate-limits",
		quotaOnExhaust: true,
		sleep:          contextSleep,
		invoke:         invoke,
		classify:       classifyGemini,
	}, nil
}

func classifyGemini(err error) errClass {
	var apierr genai.APIError
	if !errors.As(err, &apierr) {
		return classifyByText(err)
	}

	switch {
	case apierr.Code == http.StatusTooManyRequests || apierr.Status == "RESOURCE_EXHAUSTED":
		return classThrottled
	case apierr.Code == http.StatusServiceUnavailable || apierr.Code >= http.StatusInternalServerError:
		return classUnavailable
	case apierr.Code == http.StatusBadRequest:
		return classFatal
	default:
		return classifyByText(err)
	}
}
