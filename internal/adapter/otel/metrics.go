package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "proposalforge"

// Metrics holds the ProposalForge metric instruments. Services carry a
// nil-able *Metrics so tests and telemetry-disabled deployments skip
// recording entirely.
type Metrics struct {
	Saves           metric.Int64Counter
	SaveFailures    metric.Int64Counter
	Renders         metric.Int64Counter
	RenderCacheHits metric.Int64Counter
	Exports         metric.Int64Counter
	LogosInlined    metric.Int64Counter
	RenderDuration  metric.Float64Histogram
}

// NewMetrics creates all metric instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Saves, err = meter.Int64Counter("proposalforge.saves",
		metric.WithDescription("Number of proposal saves attempted"))
	if err != nil {
		return nil, err
	}

	m.SaveFailures, err = meter.Int64Counter("proposalforge.saves.failed",
		metric.WithDescription("Number of proposal saves that failed"))
	if err != nil {
		return nil, err
	}

	m.Renders, err = meter.Int64Counter("proposalforge.renders",
		metric.WithDescription("Number of proposal renders"))
	if err != nil {
		return nil, err
	}

	m.RenderCacheHits, err = meter.Int64Counter("proposalforge.renders.cache_hits",
		metric.WithDescription("Number of previews served from the render cache"))
	if err != nil {
		return nil, err
	}

	m.Exports, err = meter.Int64Counter("proposalforge.exports",
		metric.WithDescription("Number of export files produced"))
	if err != nil {
		return nil, err
	}

	m.LogosInlined, err = meter.Int64Counter("proposalforge.uploads.inlined",
		metric.WithDescription("Number of logo uploads that fell back to inline data URIs"))
	if err != nil {
		return nil, err
	}

	m.RenderDuration, err = meter.Float64Histogram("proposalforge.render.duration_seconds",
		metric.WithDescription("Render pipeline duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
