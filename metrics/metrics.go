// Package metrics records scansion metrics through the OpenTelemetry
// metrics API and exposes them to Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cours-de-latin/escansion"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/cours-de-latin/escansion"

// Metrics holds the instruments. All fields are safe for concurrent use.
type Metrics struct {
	// ScanDuration tracks the latency of one line, collaborators
	// included.
	ScanDuration metric.Float64Histogram

	// Lines counts scanned lines. Attributes: ambiguity, resolved.
	Lines metric.Int64Counter

	// Errors counts scans failed by a collaborator.
	Errors metric.Int64Counter

	// HTTPRequestDuration tracks request latency. Attributes: method, path.
	HTTPRequestDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ScanDuration, err = m.Float64Histogram("escansion.scan.duration",
		metric.WithDescription("Latency of scanning one line."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Lines, err = m.Int64Counter("escansion.lines",
		metric.WithDescription("Scanned lines by ambiguity level and resolution."),
	); err != nil {
		return nil, err
	}
	if met.Errors, err = m.Int64Counter("escansion.errors",
		metric.WithDescription("Scans failed by a collaborator."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("escansion.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// RecordScan records the outcome of one scan. v may be nil when err is
// set.
func (m *Metrics) RecordScan(ctx context.Context, v *escansion.Verse, elapsed time.Duration, err error) {
	m.ScanDuration.Record(ctx, elapsed.Seconds())
	if err != nil {
		m.Errors.Add(ctx, 1)
		return
	}
	m.Lines.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ambiguity", strconv.Itoa(int(v.Ambiguity))),
		attribute.Bool("resolved", v.Resolved),
	))
}

// Middleware times every request handled by next.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		m.HTTPRequestDuration.Record(r.Context(), time.Since(start).Seconds(),
			metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("path", r.URL.Path),
			))
	})
}

// InitProvider installs a global MeterProvider backed by the Prometheus
// exporter and returns it with its shutdown function.
func InitProvider() (metric.MeterProvider, func(context.Context) error, error) {
	promExp, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(promExp))
	otel.SetMeterProvider(mp)
	return mp, mp.Shutdown, nil
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
