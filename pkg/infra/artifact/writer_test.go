package artifact_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/a4kulshr/github-navigator/pkg/infra/artifact"
)

func TestWriter_Save(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "shots")

	w, err := artifact.NewWriter(dir)
	gt.NoError(t, err)

	gt.NoError(t, w.Save(ctx, 1, []byte("first")))
	gt.NoError(t, w.Save(ctx, 12, []byte("twelfth")))

	data, err := os.ReadFile(filepath.Join(dir, "step_001.png"))
	gt.NoError(t, err)
	gt.Equal(t, string(data), "first")

	_, err = os.Stat(filepath.Join(dir, "step_012.png"))
	gt.NoError(t, err)
}
