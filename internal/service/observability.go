package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided logger.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

// FieldRecordCount is the event field carrying the collection size after a
// use case finished.
const FieldRecordCount = "record_count"

type metricsUseCaseObserver struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	records  prometheus.Gauge
}

// NewMetricsUseCaseObserver registers use-case metrics with reg and returns
// an observer that updates them.
func NewMetricsUseCaseObserver(reg prometheus.Registerer) UseCaseObserver {
	factory := promauto.With(reg)
	return &metricsUseCaseObserver{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pensionbook_use_cases_total",
			Help: "Service use-case executions by name and outcome.",
		}, []string{"use_case", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pensionbook_use_case_duration_seconds",
			Help:    "Service use-case latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"use_case"}),
		records: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pensionbook_records",
			Help: "Number of stored pension records.",
		}),
	}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	outcome := "success"
	if !event.Success {
		outcome = "error"
	}
	o.calls.WithLabelValues(event.Name, outcome).Inc()
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
	if n, ok := event.Fields[FieldRecordCount].(int); ok {
		o.records.Set(float64(n))
	}
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var active multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			active = append(active, obs)
		}
	}
	switch len(active) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return active[0]
	}
	return active
}
