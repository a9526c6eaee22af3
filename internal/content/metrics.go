package content

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const metricNamespace = "finitefield.org/hanko-docs/internal/content"

type storeMetrics struct {
	lookups        metric.Int64Counter
	lookupsEnabled bool
	latency        metric.Float64Histogram
	latencyEnabled bool
}

func newStoreMetrics(meter metric.Meter) storeMetrics {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(metricNamespace)
	}
	lookups, lookupsErr := meter.Int64Counter(
		"content.cache.lookups",
		metric.WithDescription("Article cache lookups by result"),
	)
	latency, latencyErr := meter.Float64Histogram(
		"content.load.latency",
		metric.WithDescription("Time spent reading and rendering an article on a cache miss"),
		metric.WithUnit("ms"),
	)
	return storeMetrics{
		lookups:        lookups,
		lookupsEnabled: lookupsErr == nil,
		latency:        latency,
		latencyEnabled: latencyErr == nil,
	}
}

func (m storeMetrics) recordLookup(ctx context.Context, hit bool) {
	if !m.lookupsEnabled {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m storeMetrics) recordLoad(ctx context.Context, lang string, d time.Duration, outcome string) {
	if !m.latencyEnabled {
		return
	}
	m.latency.Record(ctx, float64(d)/float64(time.Millisecond), metric.WithAttributes(
		attribute.String("lang", lang),
		attribute.String("outcome", outcome),
	))
}
