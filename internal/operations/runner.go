package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "unemploycli/internal/errors"
	"unemploycli/internal/infrastructure"
)

// Runner executes steps sequentially
type Runner struct {
	tracer  trace.Tracer
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewRunner creates a runner. A nil tracer traces nothing, nil metrics record
// nothing and a nil logger uses the default.
func NewRunner(tracer trace.Tracer, metrics *infrastructure.Metrics, logger *slog.Logger) *Runner {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.TracerName)
	}
	return &Runner{
		tracer:  tracer,
		metrics: metrics,
		logger:  infrastructure.WithComponent(logger, "runner"),
	}
}

// Execute runs steps in order under a run span. It stops at the first
// failing step, or at the next step boundary once ctx is done, and returns
// the run state alongside the error.
func (r *Runner) Execute(ctx context.Context, runID string, steps []Step) (*RunState, error) {
	state := NewRunState(runID, steps)
	state.Start()

	ctx, span := r.tracer.Start(ctx, "analysis.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("run.step_count", len(steps)),
		))
	defer span.End()

	r.logger.InfoContext(ctx, "run_start", slog.Int("step_count", len(steps)))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			cancelErr := apperrors.NewCancellationError(step.ID(), err)
			state.skipFrom(i, "run cancelled")
			state.Cancel(cancelErr)
			infrastructure.RecordError(ctx, cancelErr)
			r.logger.WarnContext(ctx, "run_cancelled", slog.String("step", step.ID()))
			return state, cancelErr
		}

		if err := r.executeStep(ctx, state.Steps[i], step, state); err != nil {
			if i+1 < len(steps) {
				state.skipFrom(i+1, fmt.Sprintf("previous step %s failed", step.ID()))
			}
			state.Fail(err)
			span.SetStatus(codes.Error, "step failed")
			return state, err
		}
	}

	state.Complete()
	span.SetStatus(codes.Ok, "")
	r.logger.InfoContext(ctx, "run_complete", slog.Duration("duration", state.Duration()))
	return state, nil
}

func (r *Runner) executeStep(ctx context.Context, stepState *StepState, step Step, state *RunState) error {
	ctx, span := r.tracer.Start(ctx, "step."+step.ID(),
		trace.WithAttributes(
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		))
	defer span.End()

	r.logger.InfoContext(ctx, "step_start", slog.String("step", step.ID()))
	stepState.Start()

	start := time.Now()
	err := step.Execute(ctx, state)
	duration := time.Since(start)
	r.metrics.ObserveStep(step.ID(), duration)

	if err != nil {
		err = apperrors.WrapError(err, step.ID(), "")
		stepState.Fail(err)
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "step_error",
			slog.String("step", step.ID()),
			slog.String("error_type", string(apperrors.GetErrorType(err))))
		return err
	}

	stepState.Complete()
	span.SetStatus(codes.Ok, "")
	r.logger.InfoContext(ctx, "step_complete",
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
	return nil
}
