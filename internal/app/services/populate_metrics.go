package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type populateMetrics struct {
	runs       metric.Int64Counter
	duration   metric.Float64Histogram
	fetches    metric.Int64Counter
	candidates metric.Int64Counter
	outcomes   metric.Int64Counter
}

func newPopulateMetrics() populateMetrics {
	meter := otel.Meter("github.com/fr0stylo/gamecatalog/internal/app/services")
	runs, _ := meter.Int64Counter("gamecatalog.populate.runs")
	duration, _ := meter.Float64Histogram("gamecatalog.populate.duration", metric.WithUnit("s"))
	fetches, _ := meter.Int64Counter("gamecatalog.populate.fetches")
	candidates, _ := meter.Int64Counter("gamecatalog.populate.candidates")
	outcomes, _ := meter.Int64Counter("gamecatalog.populate.outcomes")
	return populateMetrics{
		runs:       runs,
		duration:   duration,
		fetches:    fetches,
		candidates: candidates,
		outcomes:   outcomes,
	}
}

func (m populateMetrics) recordRun(ctx context.Context, result string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("result", result))
	m.runs.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

func (m populateMetrics) recordFetch(ctx context.Context, platform string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.fetches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("platform", platform),
		attribute.String("result", result),
	))
}

func (m populateMetrics) recordCandidates(ctx context.Context, platform string, count int) {
	m.candidates.Add(ctx, int64(count), metric.WithAttributes(attribute.String("platform", platform)))
}

func (m populateMetrics) recordOutcome(ctx context.Context, platform, outcome string) {
	m.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("platform", platform),
		attribute.String("outcome", outcome),
	))
}
