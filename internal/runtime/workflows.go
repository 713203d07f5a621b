package runtime

import (
	"context"

	"github.com/aretw0/autocore/internal/components"
	"github.com/aretw0/autocore/pkg/workflow"
)

const (
	WorkflowStart         = "Start Car"
	WorkflowShutdown      = "Shutdown Car"
	WorkflowEmergencyStop = "Emergency Stop"

	// StartFuelLevel is the fuel level shown once the car is started.
	StartFuelLevel = 85
	// HazardWarning is shown on the dashboard after an emergency stop.
	HazardWarning = "EMERGENCY STOP - vehicle stopped"
)

// StartWorkflow starts the engine and prepares the dashboard.
func StartWorkflow(opts ...workflow.Option) *workflow.Workflow[*System] {
	return workflow.New[*System](WorkflowStart, "Sequence to start the car and prepare for driving", opts...).
		Step("Start Engine", "Initialize the engine", func(_ context.Context, s *System) error {
			return s.engine.Start()
		}).
		Step("Initialize Dashboard", "Set initial dashboard values", func(_ context.Context, s *System) error {
			s.dashboard.SetFuelLevel(StartFuelLevel)
			return nil
		}).
		Step("Ready Announcement", "Announce car is ready", func(ctx context.Context, s *System) error {
			s.logger.InfoContext(ctx, "car is ready to drive")
			return nil
		}).
		Build()
}

// ShutdownWorkflow releases the controls and turns the engine off.
func ShutdownWorkflow(opts ...workflow.Option) *workflow.Workflow[*System] {
	return workflow.New[*System](WorkflowShutdown, "Sequence to safely shutdown the car", opts...).
		Step("Release Brakes", "Ensure brakes are released", func(_ context.Context, s *System) error {
			s.brakes.Release()
			return nil
		}).
		Step("Center Steering", "Return steering to center", func(_ context.Context, s *System) error {
			s.steering.Center()
			return nil
		}).
		Step("Stop Engine", "Turn off the engine", func(_ context.Context, s *System) error {
			return s.engine.Stop()
		}).
		Build()
}

// EmergencyStopWorkflow applies full brakes and kills the engine.
func EmergencyStopWorkflow(opts ...workflow.Option) *workflow.Workflow[*System] {
	return workflow.New[*System](WorkflowEmergencyStop, "Immediate emergency stop sequence", opts...).
		Step("Max Brakes", "Apply maximum brake pressure", func(_ context.Context, s *System) error {
			return s.brakes.Apply(components.MaxBrakePressure)
		}).
		Step("Stop Engine", "Immediately stop engine", func(_ context.Context, s *System) error {
			return s.engine.Stop()
		}).
		Step("Hazard Warning", "Display emergency status", func(ctx context.Context, s *System) error {
			s.dashboard.AddWarning(HazardWarning)
			s.logger.ErrorContext(ctx, "emergency stop complete")
			return nil
		}).
		Build()
}

// Workflows returns every built-in workflow, for listing and export.
func Workflows(opts ...workflow.Option) []*workflow.Workflow[*System] {
	return []*workflow.Workflow[*System]{
		StartWorkflow(opts...),
		ShutdownWorkflow(opts...),
		EmergencyStopWorkflow(opts...),
	}
}

func (s *System) workflowOptions() []workflow.Option {
	return []workflow.Option{
		workflow.WithLogger(s.logger),
		workflow.WithHooks(s.hooks),
	}
}

func (s *System) StartWorkflow() *workflow.Workflow[*System] {
	return StartWorkflow(s.workflowOptions()...)
}

func (s *System) ShutdownWorkflow() *workflow.Workflow[*System] {
	return ShutdownWorkflow(s.workflowOptions()...)
}

func (s *System) EmergencyStopWorkflow() *workflow.Workflow[*System] {
	return EmergencyStopWorkflow(s.workflowOptions()...)
}
