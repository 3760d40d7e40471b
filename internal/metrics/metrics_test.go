package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	PoolRefill(ReasonAllocate)

	before := testutil.ToFloat64(poolRefills.WithLabelValues(ReasonRerandomize))
	PoolRefill(ReasonRerandomize)
	assert.InDelta(t, before+1, testutil.ToFloat64(poolRefills.WithLabelValues(ReasonRerandomize)), 0)

	before = testutil.ToFloat64(poolBytes)
	PoolBytesServed(21)
	assert.InDelta(t, before+21, testutil.ToFloat64(poolBytes), 0)

	before = testutil.ToFloat64(idsGenerated.WithLabelValues(PathCustom))
	IDGenerated(PathCustom)
	IDGenerated(PathCustom)
	assert.InDelta(t, before+2, testutil.ToFloat64(idsGenerated.WithLabelValues(PathCustom)), 0)

	before = testutil.ToFloat64(customBatches)
	CustomBatch()
	assert.InDelta(t, before+1, testutil.ToFloat64(customBatches), 0)
}
