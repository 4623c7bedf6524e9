package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gopher-gateway/internal/domain"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, zap.NewNop())

	c.RecordFetch(domain.FetchResult{Outcome: domain.OutcomeSuccess, Bytes: 512, Duration: 20 * time.Millisecond})
	c.RecordFetch(domain.FetchResult{Outcome: domain.OutcomeSuccess, Bytes: 64, Duration: 5 * time.Millisecond})
	c.RecordFetch(domain.FetchResult{Outcome: domain.OutcomeTimeout, Duration: 10 * time.Second})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.fetchesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetchesTotal.WithLabelValues("timeout")))

	c.RecordParse(domain.Menu([]domain.MenuItem{{Type: "1"}, {Type: "0"}}))
	c.RecordParse(domain.PlainText("hello"))
	c.RecordParse(domain.PlainText(""))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.parsedTotal.WithLabelValues("menu")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.parsedTotal.WithLabelValues("text")))

	c.RecordWorkerStart("0")
	c.RecordWorkerStart("1")
	c.RecordWorkerStop("0")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.activeWorkers))

	c.RecordJobQueued()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsQueued))

	count, err := testutil.GatherAndCount(reg, "gopher_response_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewRegistryIncludesRuntimeCollectors(t *testing.T) {
	reg := NewRegistry()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}
