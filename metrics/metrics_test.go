package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
)

func TestDisabledMetricsAreNil(t *testing.T) {
	if Enabled {
		t.Skip("metrics enabled on the command line")
	}
	assert.IsType(t, new(metrics.NilCounter), NewCounter("test/counter"))
	assert.IsType(t, new(metrics.NilMeter), NewMeter("test/meter"))
	assert.IsType(t, new(metrics.NilTimer), NewTimer("test/timer"))
}

func TestEnabledMetricsRegister(t *testing.T) {
	defer func(old bool) { Enabled = old }(Enabled)
	Enabled = true

	c := NewCounter("test/enabled/counter")
	c.Inc(3)
	assert.Equal(t, int64(3), NewCounter("test/enabled/counter").Count())

	var buf bytes.Buffer
	WriteOnce(&buf)
	assert.Contains(t, buf.String(), "counter test/enabled/counter")
}

func TestCollectProcessMetricsStops(t *testing.T) {
	stop := make(chan struct{})
	close(stop)
	CollectProcessMetrics(time.Millisecond, stop)
}
