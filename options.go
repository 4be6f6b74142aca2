package crypton

import (
	"errors"
	"log/slog"

	"github.com/hengadev/crypton/internal/monitoring"
)

// ObservabilityHook is notified around every operation.
type ObservabilityHook = monitoring.ObservabilityHook

// MetricsCollector receives the counters and timings of every operation.
type MetricsCollector = monitoring.MetricsCollector

type settings struct {
	provider Provider
	hooks    []ObservabilityHook
}

// Option configures an Engine or a Crypton.
type Option func(s *settings) error

// WithProvider replaces the default crypto/x-crypto primitives.
func WithProvider(provider Provider) Option {
	return func(s *settings) error {
		if provider == nil {
			return errors.New("provider cannot be nil")
		}
		s.provider = provider
		return nil
	}
}

// WithObservabilityHook adds a hook. It may be given several times.
func WithObservabilityHook(hook ObservabilityHook) Option {
	return func(s *settings) error {
		if hook == nil {
			return errors.New("observability hook cannot be nil")
		}
		s.hooks = append(s.hooks, hook)
		return nil
	}
}

// WithMetricsCollector records crypton.process.* metrics into collector.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(s *settings) error {
		if collector == nil {
			return errors.New("metrics collector cannot be nil")
		}
		s.hooks = append(s.hooks, monitoring.NewMetricsObservabilityHook(collector))
		return nil
	}
}

// WithLogger logs every operation to logger: debug on success, error on
// failure. Secret keys and texts are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		s.hooks = append(s.hooks, monitoring.NewLoggingObservabilityHook(logger))
		return nil
	}
}
