package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
)

// ExecutionStep names a stage of the write pipeline. Writes run through
// Execute as validate, perform, verify, respond: nothing is stored before
// the input is checked, and nothing is reported as created before the stored
// entry has been given an id.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the step at which an operation stopped.
// The cause stays reachable through errors.Is/As so domain errors keep
// their classification.
type ExecutionError struct {
	Operation string
	Step      ExecutionStep
	Cause     error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
	}

	return fmt.Sprintf("%s: %s failed: %v", e.Operation, e.Step, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Executor runs write operations and logs each step.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation describes one write use case.
//
// I is the raw input, D the validated value, R what the write returned and
// O what the caller receives. Validate and Perform are required.
type Operation[I, D, R, O any] struct {
	// Name identifies this operation in logs and errors.
	Name string

	Validate func(ctx context.Context, input I) (D, error)
	Perform  func(ctx context.Context, validated D) (R, error)

	// Verify is optional.
	Verify func(ctx context.Context, result R) error

	// Respond is optional only when R and O are the same type.
	Respond func(ctx context.Context, result R) (O, error)
}

// Execute runs op against input, stopping at the first failing step.
func Execute[I, D, R, O any](ctx context.Context, exec *Executor, op Operation[I, D, R, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	fail := func(step ExecutionStep, level slog.Level, err error) (O, error) {
		logger.Log(ctx, level, string(step)+" step failed", slog.Any("error", err))
		return zero, &ExecutionError{Operation: op.Name, Step: step, Cause: err}
	}

	validated, err := op.Validate(ctx, input)
	if err != nil {
		// Rejected input is the caller's problem, not ours.
		return fail(StepValidate, slog.LevelInfo, err)
	}

	result, err := op.Perform(ctx, validated)
	if err != nil {
		return fail(StepPerform, slog.LevelError, err)
	}

	if op.Verify != nil {
		if err := op.Verify(ctx, result); err != nil {
			return fail(StepVerify, slog.LevelError, err)
		}
	}

	out, err := respond(ctx, op.Respond, result)
	if err != nil {
		return fail(StepRespond, slog.LevelWarn, err)
	}

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}

// respond applies fn, or passes result through when fn is nil and the types
// line up.
func respond[R, O any](ctx context.Context, fn func(context.Context, R) (O, error), result R) (O, error) {
	if fn != nil {
		return fn(ctx, result)
	}

	out, ok := any(result).(O)
	if !ok {
		return out, fmt.Errorf("no respond step to convert %T", result)
	}

	return out, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
