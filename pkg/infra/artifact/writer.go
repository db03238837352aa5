package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Writer is a write-only sink that stores per-step debug screenshots as
// PNG files under a single directory.
type Writer struct {
	dir string
}

// NewWriter creates the screenshot directory if needed
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create screenshot directory", goerr.V("dir", dir))
	}
	return &Writer{dir: dir}, nil
}

// Save writes one step's screenshot as step_NNN.png
func (w *Writer) Save(ctx context.Context, step int, image []byte) error {
	path := filepath.Join(w.dir, fmt.Sprintf("step_%03d.png", step))
	if err := os.WriteFile(path, image, 0644); err != nil {
		return goerr.Wrap(err, "failed to write screenshot", goerr.V("path", path))
	}
	ctxlog.From(ctx).Debug("screenshot saved", "path", path, "step", step)
	return nil
}
