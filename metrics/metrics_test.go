package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/cours-de-latin/escansion"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	met := findMetric(rm, name)
	if met == nil {
		t.Fatalf("metric %s not found", name)
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s data is %T, want Sum[int64]", name, met.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordScan(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordScan(ctx, &escansion.Verse{Ambiguity: escansion.AmbiguityLicence, Resolved: true}, 20*time.Millisecond, nil)
	m.RecordScan(ctx, &escansion.Verse{Resolved: true}, 10*time.Millisecond, nil)
	m.RecordScan(ctx, nil, time.Millisecond, errors.New("boom"))

	rm := collect(t, reader)
	if got := sumOf(t, rm, "escansion.lines"); got != 2 {
		t.Errorf("escansion.lines = %d, want 2", got)
	}
	if got := sumOf(t, rm, "escansion.errors"); got != 1 {
		t.Errorf("escansion.errors = %d, want 1", got)
	}

	met := findMetric(rm, "escansion.scan.duration")
	if met == nil {
		t.Fatal("escansion.scan.duration not found")
	}
	hist, ok := met.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("duration data is %T", met.Data)
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 3 {
		t.Errorf("duration count = %d, want 3", count)
	}

	lines := findMetric(rm, "escansion.lines").Data.(metricdata.Sum[int64])
	if len(lines.DataPoints) != 2 {
		t.Errorf("escansion.lines has %d attribute sets, want 2", len(lines.DataPoints))
	}
}

func TestMiddleware(t *testing.T) {
	m, reader := newTestMetrics(t)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	met := findMetric(collect(t, reader), "escansion.http.request.duration")
	if met == nil {
		t.Fatal("escansion.http.request.duration not found")
	}
	hist := met.Data.(metricdata.Histogram[float64])
	if len(hist.DataPoints) != 1 || hist.DataPoints[0].Count != 1 {
		t.Errorf("unexpected data points: %+v", hist.DataPoints)
	}
	path, _ := hist.DataPoints[0].Attributes.Value("path")
	if path.AsString() != "/api/scan" {
		t.Errorf("path attribute = %q", path.AsString())
	}
}
