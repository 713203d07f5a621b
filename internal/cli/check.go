package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/autocore/internal/presentation/tui"
	"github.com/aretw0/autocore/pkg/safety"
)

// ErrUnsafe is returned by Check when a finding is Critical or worse.
var ErrUnsafe = errors.New("readings are unsafe")

// Check evaluates a single reading against limits and prints the findings.
// It returns ErrUnsafe when the reading is not safe.
func Check(out io.Writer, p termenv.Profile, limits safety.Limits, r safety.Readings) error {
	findings := safety.NewMonitor(limits).Check(r)
	fmt.Fprint(out, tui.RenderFindings(p, findings))
	if !safety.IsSafe(findings) {
		return ErrUnsafe
	}
	return nil
}
