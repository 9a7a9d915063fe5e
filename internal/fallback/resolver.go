// Package fallback keeps read paths demoable while the warranty API is down.
// A failed read is answered from a static dataset and tagged as such, so callers
// can tell live data from canned data.
package fallback

import (
	"context"
	"fmt"
	"log/slog"

	"warranty/internal/observability"
)

type Source string

const (
	Live     Source = "live"
	Fallback Source = "fallback"
)

// Result is either Live(Value) or Fallback(Value). Err holds the masked failure
// for Fallback results.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

func (r Result[T]) IsFallback() bool { return r.Source == Fallback }

type Resolver struct {
	Logger *slog.Logger
	// Disabled turns fallbacks off: failures are returned instead of masked.
	Disabled bool
}

// WithFallback makes a single attempt and returns static on any failure.
func WithFallback[T any](ctx context.Context, call func(context.Context) (T, error), static T) Result[T] {
	res, _ := Resolve(ctx, nil, "", call, static)
	return res
}

// Resolve is WithFallback with logging and metrics for resource. With a
// disabled resolver the failure is returned and the Result carries no value.
func Resolve[T any](ctx context.Context, r *Resolver, resource string, call func(context.Context) (T, error), static T) (Result[T], error) {
	v, err := safeCall(ctx, call)
	if err == nil {
		return Result[T]{Value: v, Source: Live}, nil
	}
	if r != nil && r.Disabled {
		return Result[T]{Err: err}, err
	}

	logger := slog.Default()
	if r != nil && r.Logger != nil {
		logger = r.Logger
	}
	logger.WarnContext(ctx, "api call failed, serving fallback data", "resource", resource, "err", err)
	if resource != "" {
		observability.Fallbacks.WithLabelValues(resource).Inc()
	}
	return Result[T]{Value: static, Source: Fallback, Err: err}, nil
}

func safeCall[T any](ctx context.Context, call func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			v, err = zero, fmt.Errorf("panic: %v", p)
		}
	}()
	return call(ctx)
}
