package tui_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autocore/internal/components"
	"github.com/aretw0/autocore/internal/presentation/tui"
	"github.com/aretw0/autocore/internal/runtime"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/fsm"
	"github.com/aretw0/autocore/pkg/safety"
	"github.com/aretw0/autocore/pkg/scheduler"
)

func snapshot() runtime.Snapshot {
	return runtime.Snapshot{
		Tick:        12,
		EngineState: fsm.EngineRunning,
		Readings:    safety.Readings{Speed: 130, Temperature: 23.4, RPM: 817, Fuel: 85, BrakePressure: 45, EngineRunning: true},
		Dashboard: components.DashboardView{
			Speed:         130,
			Fuel:          85,
			Odometer:      12.5,
			SteeringAngle: -30,
			Warnings:      []string{"High speed - drive carefully"},
		},
		Findings: []safety.Finding{{Rule: safety.SpeedExceeded, Current: 130, Limit: 120}},
		Components: []runtime.ComponentStatus{
			{ID: domain.Engine, State: domain.ComponentState{Status: domain.StatusOnline}},
		},
	}
}

func TestRenderDashboard(t *testing.T) {
	out := tui.RenderDashboard(termenv.Ascii, snapshot())

	for _, want := range []string{
		"CAR DASHBOARD  ·  tick 12",
		"Speed:       130 km/h",
		"RUNNING",
		" 817",
		"-30° (LEFT)",
		"12.5 km",
		"Engine ONLINE",
		"• High speed - drive carefully",
		"[WARNING] SPEED EXCEEDED: 130 km/h (max: 120 km/h)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "the ascii profile carries no escape codes")
	assert.NotContains(t, out, "CRITICAL SAFETY ISSUE")
}

func TestRenderDashboard_AllClear(t *testing.T) {
	snap := snapshot()
	snap.Dashboard.Warnings = nil
	snap.Findings = nil

	assert.Contains(t, tui.RenderDashboard(termenv.Ascii, snap), "All systems OK")
}

func TestRenderFindings(t *testing.T) {
	out := tui.RenderFindings(termenv.Ascii, []safety.Finding{
		{Rule: safety.Overheating, Current: 110, Limit: 95},
	})
	assert.Contains(t, out, "EMERGENCY")
	assert.Contains(t, out, "verdict: UNSAFE (highest: emergency)")

	assert.Contains(t, tui.RenderFindings(termenv.Ascii, nil), "all readings within limits")
}

func TestReportMarkdown(t *testing.T) {
	md := tui.ReportMarkdown(scheduler.Report{Ticks: 30, Failures: 1, Elapsed: 3 * time.Second}, snapshot())

	assert.True(t, strings.HasPrefix(md, "# Run report"))
	assert.Contains(t, md, "| Ticks | 30 |")
	assert.Contains(t, md, "| Failed ticks | 1 |")
	assert.Contains(t, md, "- **Engine**: ONLINE")
	assert.Contains(t, md, "- `warning` SPEED EXCEEDED")

	render, err := tui.NewRenderer()
	require.NoError(t, err)
	out, err := render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "Run report")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), "|_|  \\___|")
}
