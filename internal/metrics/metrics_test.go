package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledReturnsNoop(t *testing.T) {
	p := New(false, prometheus.NewRegistry())
	_, ok := p.(Noop)
	assert.True(t, ok)

	// must not panic
	p.IncRequestsTotal("/api/entries", 200)
	p.ObserveRequestDuration("/api/entries", time.Millisecond)
	p.IncStoreOps("logs", "read", true)
	p.ObserveStoreDuration("read", time.Millisecond)
	p.SetLogEntries(3)
}

func TestPrometheusProvider_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(true, reg).(*PrometheusProvider)

	p.IncRequestsTotal("/api/entries", 201)
	p.IncRequestsTotal("/api/entries", 204)
	p.IncRequestsTotal("/api/entries", 502)
	p.IncStoreOps("logs", "write", false)
	p.SetLogEntries(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.requestsTotal.WithLabelValues("/api/entries", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requestsTotal.WithLabelValues("/api/entries", "5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.storeOps.WithLabelValues("logs", "write", "failed")))
	assert.Equal(t, 7.0, testutil.ToFloat64(p.logEntries))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestHTTPStatusBucket(t *testing.T) {
	tests := map[int]string{100: "1xx", 200: "2xx", 302: "3xx", 404: "4xx", 500: "5xx", 503: "5xx"}
	for code, want := range tests {
		assert.Equal(t, want, httpStatusBucket(code), "code %d", code)
	}
}
