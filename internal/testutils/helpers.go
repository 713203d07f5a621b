package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/pkg/scheduler"
)

// Epoch is the fixed start time of clocks returned by NewClock.
var Epoch = time.Unix(0, 0)

// NewClock returns a manual clock starting at Epoch, so event loop tests
// never sleep.
func NewClock() *scheduler.ManualClock {
	return scheduler.NewManualClock(Epoch)
}

// WriteFile creates name with content in a fresh temp dir and returns its
// absolute path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp file")

	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644), "Failed to write %s", name)
	return absPath
}
