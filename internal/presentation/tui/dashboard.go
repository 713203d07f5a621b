package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/autocore/internal/components"
	"github.com/aretw0/autocore/internal/runtime"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/safety"
)

const rule = "────────────────────────────────────────────────────"

// SeverityColor maps a safety severity to a terminal color.
func SeverityColor(p termenv.Profile, s safety.Severity) termenv.Color {
	switch s {
	case safety.Emergency:
		return p.Color("#d946ef")
	case safety.Critical:
		return p.Color("#ef4444")
	case safety.Warning:
		return p.Color("#facc15")
	default:
		return p.Color("#38bdf8")
	}
}

func statusColor(p termenv.Profile, s domain.ComponentStatus) termenv.Color {
	switch s {
	case domain.StatusOnline:
		return p.Color("#22c55e")
	case domain.StatusFaulted:
		return p.Color("#ef4444")
	case domain.StatusInitializing:
		return p.Color("#facc15")
	default:
		return p.Color("#9ca3af")
	}
}

// RenderDashboard draws a snapshot as a text panel.
func RenderDashboard(p termenv.Profile, snap runtime.Snapshot) string {
	v := snap.Dashboard
	var sb strings.Builder

	title := p.String(fmt.Sprintf("CAR DASHBOARD  ·  tick %d", snap.Tick)).Bold()
	fmt.Fprintf(&sb, "┌%s\n", rule)
	fmt.Fprintf(&sb, "│ %s\n", title)
	fmt.Fprintf(&sb, "├%s\n", rule)
	fmt.Fprintf(&sb, "│ Speed:       %3d km/h     Fuel:      %3d%%\n", v.Speed, v.Fuel)
	fmt.Fprintf(&sb, "│ Engine:      %-8s     RPM:      %4d     Temp: %5.1f°C\n",
		snap.EngineState, snap.Readings.RPM, snap.Readings.Temperature)
	fmt.Fprintf(&sb, "│ Brake Press: %3d%%         Steering: %4d° (%s)\n",
		snap.Readings.BrakePressure, v.SteeringAngle, components.Direction(v.SteeringAngle))
	fmt.Fprintf(&sb, "│ Odometer:    %8.1f km\n", v.Odometer)

	fmt.Fprintf(&sb, "│ Components: ")
	for i, c := range snap.Components {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(p.String(fmt.Sprintf("%s %s", c.ID, c.State)).Foreground(statusColor(p, c.State.Status)).String())
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "├%s\n", rule)

	if len(v.Warnings) == 0 {
		fmt.Fprintf(&sb, "│ %s\n", p.String("All systems OK").Foreground(p.Color("#22c55e")))
	} else {
		fmt.Fprintf(&sb, "│ %s\n", p.String("WARNINGS:").Foreground(SeverityColor(p, safety.Warning)).Bold())
		for _, w := range v.Warnings {
			fmt.Fprintf(&sb, "│   • %s\n", w)
		}
	}

	if len(snap.Findings) > 0 {
		fmt.Fprintf(&sb, "├%s\n", rule)
		for _, f := range snap.Findings {
			sev := f.Severity()
			label := p.String(fmt.Sprintf("[%s]", strings.ToUpper(sev.String()))).Foreground(SeverityColor(p, sev))
			fmt.Fprintf(&sb, "│ %s %s\n", label, f)
		}
		if !safety.IsSafe(snap.Findings) {
			fmt.Fprintf(&sb, "│ %s\n", p.String("CRITICAL SAFETY ISSUE - consider stopping!").Foreground(SeverityColor(p, safety.Critical)).Bold())
		}
	}
	fmt.Fprintf(&sb, "└%s\n", rule)
	return sb.String()
}

// RenderFindings formats an ad hoc safety check, one finding per line.
func RenderFindings(p termenv.Profile, findings []safety.Finding) string {
	if len(findings) == 0 {
		return p.String("✓ all readings within limits").Foreground(p.Color("#22c55e")).String() + "\n"
	}
	var sb strings.Builder
	for _, f := range findings {
		sev := f.Severity()
		label := p.String(fmt.Sprintf("%-9s", strings.ToUpper(sev.String()))).Foreground(SeverityColor(p, sev))
		fmt.Fprintf(&sb, "%s %s\n", label, f)
	}
	verdict := "SAFE"
	if !safety.IsSafe(findings) {
		verdict = "UNSAFE"
	}
	fmt.Fprintf(&sb, "verdict: %s (highest: %s)\n", verdict, safety.Highest(findings))
	return sb.String()
}
