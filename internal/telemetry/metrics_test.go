package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/fit/{selector}", 200, 15*time.Millisecond)
	m.Failure("SchemaError")
	m.RowsDropped("pass-touchdowns", 3)
	m.RowsDropped("turnovers", 0)

	body := scrape(t, m)
	assert.Contains(t, body, `cfbstats_http_requests_total{code="200",route="/api/fit/{selector}"} 1`)
	assert.Contains(t, body, `cfbstats_pipeline_failures_total{kind="SchemaError"} 1`)
	assert.Contains(t, body, `cfbstats_rows_dropped_total{pair="pass-touchdowns"} 3`)
	assert.NotContains(t, body, `pair="turnovers"`)
	assert.Contains(t, body, "cfbstats_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Failure("DataUnavailableError")
	assert.NotContains(t, scrape(t, b), "DataUnavailableError")
}
