package downsample

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestInstrumentedDownsampler(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := NewInstrumentedDownsampler(NewLttbDownsampler(), reg)
	m := d.(*instrumented)

	result, err := d.Downsample(monthlyPoints(10, 12, 8, 10, 12), 3)
	require.NoError(t, err)
	require.Len(t, result, 3)

	_, err = d.Downsample(monthlyPoints(10, 12, 8), 1)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.inputPoints))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.outputPoints))

	count, err := testutil.GatherAndCount(reg, "lttb_downsample_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInstrumentedDownsampler_NilRegisterer(t *testing.T) {
	d := NewInstrumentedDownsampler(NewLttbDownsampler(), nil)
	result, err := d.Downsample(monthlyPoints(1, 2), 0)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
