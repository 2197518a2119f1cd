package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAndExpose(t *testing.T) {
	m := New("ca_engine")

	m.RecordEvaluation("block", 50*time.Microsecond)
	m.RecordEvaluation("allow", 30*time.Microsecond)
	m.RecordSweep(5760, 2*time.Second)
	m.RecordFinding("critical")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ca_engine_evaluations_total{decision="block"} 1`), "missing evaluation counter")
	assert.True(t, strings.Contains(body, "ca_engine_sweeps_total 1"), "missing sweep counter")
	assert.True(t, strings.Contains(body, "ca_engine_sweep_scenarios_total 5760"), "missing scenario counter")
	assert.True(t, strings.Contains(body, `ca_engine_sweep_findings_total{severity="critical"} 1`), "missing finding counter")
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	a := New("ns_a")
	b := New("ns_b")
	a.RecordEvaluation("allow", time.Microsecond)

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.False(t, strings.Contains(rec.Body.String(), "ns_a_evaluations_total"), "registries must not share metrics")
}
