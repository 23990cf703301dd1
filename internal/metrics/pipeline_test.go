package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric matching
// the given name, partial label pattern, and value. Uses regex to handle extra
// OTel scope labels injected by the Prometheus exporter.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

// scrape renders the provider's Prometheus exposition output.
func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestNewPipelineMetrics(t *testing.T) {
	t.Run("Success_CreatePipelineMetrics", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		pipelineMetrics, err := NewPipelineMetrics(provider.MeterProvider(), "test_app")

		require.NoError(t, err)
		assert.NotNil(t, pipelineMetrics)
	})
}

func TestPipelineMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	pm, err := NewPipelineMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	pm.RecordOperation(context.Background(), "forecast", "generate", "success")
	pm.RecordOperation(context.Background(), "forecast", "publish", "error")
	pm.RecordOperation(context.Background(), "actuals", "pull_actuals", "success")

	output := scrape(t, provider)
	assertMetricLine(t, output, "test_app_operations_total", `domain="forecast"`, "1")
	assertMetricLine(t, output, "test_app_operations_total", `operation="pull_actuals"`, "1")
}

func TestPipelineMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	pm, err := NewPipelineMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	pm.RecordDuration(context.Background(), "forecast", "publish", 1500*time.Millisecond, "success")

	output := scrape(t, provider)
	assert.Contains(t, output, "test_app_operation_duration_seconds")
}

func TestPipelineMetrics_RecordRecords(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	pm, err := NewPipelineMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	pm.RecordRecords(context.Background(), "forecast", "publish", "delivered", 5)
	pm.RecordRecords(context.Background(), "forecast", "publish", "failed", 1)
	pm.RecordRecords(context.Background(), "forecast", "publish", "failed", 0) // ignored

	output := scrape(t, provider)
	assertMetricLine(t, output, "test_app_records_total", `status="delivered"`, "5")
	assertMetricLine(t, output, "test_app_records_total", `status="failed"`, "1")
}

func TestNoOpPipelineMetrics(t *testing.T) {
	pm := NewNoOpPipelineMetrics()

	// Should not panic
	pm.RecordOperation(context.Background(), "forecast", "generate", "success")
	pm.RecordDuration(context.Background(), "forecast", "generate", time.Second, "success")
	pm.RecordRecords(context.Background(), "forecast", "generate", "generated", 10)
}
