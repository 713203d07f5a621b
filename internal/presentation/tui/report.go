package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/autocore/internal/runtime"
	"github.com/aretw0/autocore/pkg/scheduler"
)

// ReportMarkdown summarizes a finished run as markdown.
func ReportMarkdown(rep scheduler.Report, snap runtime.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("# Run report\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Ticks | %d |\n", rep.Ticks)
	fmt.Fprintf(&sb, "| Failed ticks | %d |\n", rep.Failures)
	fmt.Fprintf(&sb, "| Overruns | %d |\n", rep.Overruns)
	fmt.Fprintf(&sb, "| Elapsed | %s |\n", rep.Elapsed)
	fmt.Fprintf(&sb, "| Odometer | %.1f km |\n", snap.Dashboard.Odometer)
	fmt.Fprintf(&sb, "| Events processed | %d |\n", snap.Dashboard.EventsProcessed)
	fmt.Fprintf(&sb, "| Engine | %s |\n", snap.EngineState)
	if snap.Emergency {
		sb.WriteString("| Emergency stop | **yes** |\n")
	}

	sb.WriteString("\n## Components\n\n")
	for _, c := range snap.Components {
		fmt.Fprintf(&sb, "- **%s**: %s\n", c.ID, c.State)
	}

	sb.WriteString("\n## Dashboard warnings\n\n")
	if len(snap.Dashboard.Warnings) == 0 {
		sb.WriteString("_None._\n")
	}
	for _, w := range snap.Dashboard.Warnings {
		fmt.Fprintf(&sb, "- %s\n", w)
	}

	if len(snap.Findings) > 0 {
		sb.WriteString("\n## Last safety check\n\n")
		for _, f := range snap.Findings {
			fmt.Fprintf(&sb, "- `%s` %s\n", f.Severity(), f)
		}
	}
	return sb.String()
}
