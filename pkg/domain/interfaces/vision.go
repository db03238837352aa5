package interfaces

import "context"

// VisionClient defines the inference provider boundary: send one screenshot
// plus an instruction prompt, get the raw text completion back. Each
// implementation owns its provider's request shape, retry/backoff policy,
// and quota-error classification.
type VisionClient interface {
	Analyze(ctx context.Context, image []byte, prompt string) (string, error)
}

// ScreenshotSink receives per-step screenshots for debugging. Write-only;
// failures never affect navigation.
type ScreenshotSink interface {
	Save(ctx context.Context, step int, image []byte) error
}
