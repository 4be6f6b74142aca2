package monitoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ObservabilityHook is notified around every facade operation.
type ObservabilityHook interface {
	// Called before the operation starts
	OnProcessStart(ctx context.Context, operation string, metadata map[string]any)

	// Called after the operation completes (success or failure)
	OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any)

	// Called when the operation fails
	OnError(ctx context.Context, operation string, err error, metadata map[string]any)
}

// NoOpObservabilityHook is a no-op implementation of ObservabilityHook
type NoOpObservabilityHook struct{}

func (n *NoOpObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
}

// LoggingObservabilityHook writes one record per operation.
type LoggingObservabilityHook struct {
	logger *slog.Logger
}

// NewLoggingObservabilityHook creates a hook logging to logger, or to
// slog.Default when logger is nil.
func NewLoggingObservabilityHook(logger *slog.Logger) *LoggingObservabilityHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObservabilityHook{logger: logger}
}

func (l *LoggingObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	l.logger.DebugContext(ctx, "operation started", append([]any{"operation", operation}, flatten(metadata)...)...)
}

func (l *LoggingObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	args := append([]any{"operation", operation, "duration", duration}, flatten(metadata)...)
	if err != nil {
		l.logger.ErrorContext(ctx, "operation failed", append(args, "error", err)...)
		return
	}
	l.logger.DebugContext(ctx, "operation completed", args...)
}

// OnError is a no-op: failures are already logged by OnProcessComplete.
func (l *LoggingObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
}

func flatten(metadata map[string]any) []any {
	args := make([]any, 0, len(metadata)*2)
	for k, v := range metadata {
		args = append(args, k, v)
	}
	return args
}

// MetricsObservabilityHook turns operations into counters and timings.
type MetricsObservabilityHook struct {
	collector MetricsCollector
}

// NewMetricsObservabilityHook creates a new metrics observability hook
func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	if collector == nil {
		collector = &NoOpMetricsCollector{}
	}
	return &MetricsObservabilityHook{
		collector: collector,
	}
}

func (m *MetricsObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	m.collector.IncrementCounter(MetricStarted, map[string]string{"operation": operation})
}

func (m *MetricsObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	tags := map[string]string{"operation": operation}
	if err != nil {
		m.collector.IncrementCounter(MetricFailed, tags)
	} else {
		m.collector.IncrementCounter(MetricSucceeded, tags)
	}
	m.collector.RecordTiming(MetricDuration, duration, tags)
}

func (m *MetricsObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	tags := map[string]string{
		"operation": operation,
		"error":     fmt.Sprintf("%T", err),
	}
	m.collector.IncrementCounter(MetricErrors, tags)
}

// CompositeObservabilityHook combines multiple hooks
type CompositeObservabilityHook struct {
	hooks []ObservabilityHook
}

// NewCompositeObservabilityHook creates a new composite hook. Nil hooks are skipped.
func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	kept := make([]ObservabilityHook, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			kept = append(kept, h)
		}
	}
	return &CompositeObservabilityHook{
		hooks: kept,
	}
}

func (c *CompositeObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessStart(ctx, operation, metadata)
	}
}

func (c *CompositeObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessComplete(ctx, operation, duration, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnError(ctx, operation, err, metadata)
	}
}
