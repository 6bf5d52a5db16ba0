package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricelens/backend/internal/domain"
)

func newTestMetrics() *PrometheusMetrics {
	return NewPrometheusMetrics(Config{})
}

// counterValue sums the counter samples of family name whose labels include want.
func counterValue(t *testing.T, m *PrometheusMetrics, name string, want map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			if hasLabels(metric, want) {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func hasLabels(metric *dto.Metric, want map[string]string) bool {
	got := make(map[string]string)
	for _, l := range metric.GetLabel() {
		got[l.GetName()] = l.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestPrometheusMetrics_Counters(t *testing.T) {
	m := newTestMetrics()

	m.ObserveRequest(domain.IntentPriceQuery, true, false, 120*time.Millisecond)
	m.ObserveRequest(domain.IntentPriceQuery, false, false, 80*time.Millisecond)
	m.ObserveRequest(domain.IntentChat, false, false, 10*time.Millisecond)
	m.IncFallback("classify")
	m.IncFallback("classify")
	m.IncFallback("search")
	m.IncSearchCache(true)
	m.IncSearchCache(false)
	m.IncSearchCache(false)

	assert.Equal(t, 2.0, counterValue(t, m, "pricelens_agent_requests_total", map[string]string{"intent": "price_query"}))
	assert.Equal(t, 1.0, counterValue(t, m, "pricelens_agent_requests_total", map[string]string{"intent": "price_query", "matched": "true"}))
	assert.Equal(t, 2.0, counterValue(t, m, "pricelens_agent_fallbacks_total", map[string]string{"stage": "classify"}))
	assert.Equal(t, 1.0, counterValue(t, m, "pricelens_agent_fallbacks_total", map[string]string{"stage": "search"}))
	assert.Equal(t, 1.0, counterValue(t, m, "pricelens_search_cache_lookups_total", map[string]string{"result": "hit"}))
	assert.Equal(t, 2.0, counterValue(t, m, "pricelens_search_cache_lookups_total", map[string]string{"result": "miss"}))
}

func TestPrometheusMetrics_HTTP(t *testing.T) {
	m := newTestMetrics()

	m.ObserveHTTP("/api/v1/agent", "POST", 200, time.Millisecond)
	m.ObserveHTTP("", "GET", 404, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, m, "pricelens_http_requests_total", map[string]string{"route": "/api/v1/agent", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, m, "pricelens_http_requests_total", map[string]string{"route": "unmatched"}))
}

func TestPrometheusMetrics_Handler(t *testing.T) {
	m := NewPrometheusMetrics(DefaultConfig())
	m.ObserveStage("classify", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `pricelens_agent_stage_duration_seconds_count{stage="classify"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
