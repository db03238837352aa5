package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/m-mizutani/goerr/v2"

	"github.com/a4kulshr/github-navigator/pkg/domain/types"
)

// newOpenAI builds the GPT-4V variant, and the OpenRouter variant when a
// base URL is set: OpenRouter speaks the OpenAI chat-completions shape, so
// one request builder serves both, exactly as one client did originally.
func newOpenAI(cfg Config) *client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	sdk := openai.NewClientWithConfig(clientCfg)

	invoke := func(ctx context.Context, image []byte, prompt string) (string, error) {
		resp, err := sdk.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:     cfg.Model,
			MaxTokens: maxOutputTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: prompt,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
							},
						},
					},
				},
			},
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", goerr.Wrap(errEmptyResponse, "chat completion returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}

	guidance := "OpenAI quota exhausted (billing). Check usage: https://platform.openai.com/usage"
	if cfg.Provider == types.ProviderOpenRouter {
		guidance = "OpenRouter credits exhausted. Check account: https://openrouter.ai/credits"
	}

	return &client{
		provider:      cfg.Provider,
		policy:        retryPolicy{maxAttempts: 3, baseDelay: backoffBase, maxDelay: backoffCeiling},
		callDelay:     cfg.CallDelay,
		quotaGuidance: guidance,
		sleep:         contextSleep,
		invoke:        invoke,
		classify:      classifyOpenAI,
	}
}

func classifyOpenAI(err error) errClass {
	var apierr *openai.APIError
	if !errors.As(err, &apierr) {
		return classifyByText(err)
	}

	// insufficient_quota arrives with a 429 status but is a billing
	// condition, not throttling: retrying cannot succeed.
	code := strings.ToLower(fmt.Sprint(apierr.Code))
	if code == "insufficient_quota" || apierr.Type == "insufficient_quota" {
		return classQuota
	}

	switch {
	case apierr.HTTPStatusCode == http.StatusTooManyRequests:
		return classThrottled
	case apierr.HTTPStatusCode >= http.StatusInternalServerError:
		return classUnavailable
	default:
		return classFatal
	}
}
