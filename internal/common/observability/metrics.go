package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	commitCounter  otelmetric.Int64Counter
	commitDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	commitCounter, _ := meter.Int64Counter(
		"commits.processed",
		otelmetric.WithDescription("Number of evaluation commits processed"),
	)

	commitDuration, _ := meter.Float64Histogram(
		"commits.duration",
		otelmetric.WithDescription("Evaluation commit duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		commitCounter:  commitCounter,
		commitDuration: commitDuration,
	}
}

func (o *Observability) RecordCommit(ctx context.Context, status string) {
	if o.commitCounter != nil {
		o.commitCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordCommitDuration(ctx context.Context, duration time.Duration, status string) {
	if o.commitDuration != nil {
		o.commitDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
