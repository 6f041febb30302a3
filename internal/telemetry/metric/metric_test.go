package metric

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRegistry_Scrape(t *testing.T) {
	r := NewRegistry(func() float64 { return 42 })

	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
	r.CommandsTotal.WithLabelValues("GET", "ok").Inc()
	r.CommandDuration.WithLabelValues("GET").Observe(0.0001)
	r.FlushesTotal.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		"rustbucket_connections_total 1",
		"rustbucket_connections_active 1",
		`rustbucket_commands_total{command="GET",status="ok"} 1`,
		"rustbucket_keys 42",
		"rustbucket_flushes_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}

func TestNewRegistry_NilKeysFunc(t *testing.T) {
	r := NewRegistry(nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if strings.Contains(rec.Body.String(), "rustbucket_keys") {
		t.Error("keys gauge registered without a sampler")
	}
}
