package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/autocore/pkg/domain"
)

// Action performs a step against the workflow's context value.
type Action[C any] func(ctx context.Context, c C) error

// Step is a single named unit of work.
type Step[C any] struct {
	Name        string
	Description string
	Action      Action[C]
}

// StepError reports the step that aborted a workflow.
type StepError struct {
	Workflow string
	Step     string
	Index    int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("workflow %q: step %d (%s) failed: %v", e.Workflow, e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Option configures a Workflow.
type Option func(*options)

type options struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers an OnStep observer.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// Builder accumulates steps. It is not safe for concurrent use.
type Builder[C any] struct {
	name        string
	description string
	steps       []Step[C]
	opts        options
}

// New starts a workflow definition.
func New[C any](name, description string, opts ...Option) *Builder[C] {
	b := &Builder[C]{
		name:        name,
		description: description,
		opts: options{
			logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// Step appends a step and returns the builder for chaining.
func (b *Builder[C]) Step(name, description string, action Action[C]) *Builder[C] {
	b.steps = append(b.steps, Step[C]{
		Name:        name,
		Description: description,
		Action:      action,
	})
	return b
}

// Build returns an immutable workflow. Later calls to Step on the builder do
// not affect workflows already built.
func (b *Builder[C]) Build() *Workflow[C] {
	steps := make([]Step[C], len(b.steps))
	copy(steps, b.steps)
	return &Workflow[C]{
		name:        b.name,
		description: b.description,
		steps:       steps,
		logger:      b.opts.logger,
		hooks:       b.opts.hooks,
	}
}

// Workflow is an ordered, replayable list of steps.
type Workflow[C any] struct {
	name        string
	description string
	steps       []Step[C]
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
}

func (w *Workflow[C]) Name() string        { return w.name }
func (w *Workflow[C]) Description() string { return w.description }
func (w *Workflow[C]) Len() int            { return len(w.steps) }

// Steps returns a copy of the step list.
func (w *Workflow[C]) Steps() []Step[C] {
	out := make([]Step[C], len(w.steps))
	copy(out, w.steps)
	return out
}

func (w *Workflow[C]) String() string {
	return fmt.Sprintf("Workflow[%s] (%d steps)", w.name, len(w.steps))
}

// Execute runs every step in order and stops at the first failure, which is
// returned as a *StepError. The context is checked before each step.
func (w *Workflow[C]) Execute(ctx context.Context, c C) error {
	w.logger.InfoContext(ctx, "executing workflow", "workflow", w.name, "steps", len(w.steps))

	for i, step := range w.steps {
		if err := ctx.Err(); err != nil {
			return w.fail(ctx, i, step, 0, err)
		}

		w.logger.DebugContext(ctx, "running step",
			"workflow", w.name,
			"step", step.Name,
			"index", i+1,
			"total", len(w.steps),
		)

		start := time.Now()
		err := w.run(ctx, step, c)
		took := time.Since(start)

		if err != nil {
			return w.fail(ctx, i, step, took, err)
		}
		w.notify(ctx, i, step, took, nil)
	}

	w.logger.InfoContext(ctx, "workflow completed", "workflow", w.name)
	return nil
}

func (w *Workflow[C]) run(ctx context.Context, step Step[C], c C) error {
	if step.Action == nil {
		return nil
	}
	return step.Action(ctx, c)
}

func (w *Workflow[C]) fail(ctx context.Context, i int, step Step[C], took time.Duration, err error) error {
	w.notify(ctx, i, step, took, err)
	w.logger.WarnContext(ctx, "workflow aborted",
		"workflow", w.name,
		"step", step.Name,
		"index", i+1,
		"err", err,
	)
	return &StepError{Workflow: w.name, Step: step.Name, Index: i, Err: err}
}

func (w *Workflow[C]) notify(ctx context.Context, i int, step Step[C], took time.Duration, err error) {
	if w.hooks.OnStep == nil {
		return
	}
	w.hooks.OnStep(ctx, &domain.StepEvent{
		Workflow: w.name,
		Step:     step.Name,
		Index:    i,
		Total:    len(w.steps),
		Duration: took,
		Err:      err,
	})
}
