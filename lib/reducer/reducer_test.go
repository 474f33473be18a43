package reducer

import (
	"bytes"
	"context"
	"github.com/kadaan/lttb/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func newConfig(threshold int, defs ...config.SeriesDefinition) *config.DownsampleConfig {
	start := time.Unix(1_650_000_000, 0).UTC()
	return &config.DownsampleConfig{
		Start:          start,
		End:            start.Add(100 * time.Minute),
		SampleInterval: time.Minute,
		Threshold:      threshold,
		SeriesConfig:   config.SeriesConfig{TimeSeries: defs},
		Parallelism:    2,
		OutputFormat:   config.Text,
	}
}

func TestReducer_Run(t *testing.T) {
	c := newConfig(10,
		config.SeriesDefinition{Name: "wave", Expression: "Sin(Index / 5) * 100"},
		config.SeriesDefinition{Name: "ramp", Labels: []map[string]string{{"host": "a"}}, Expression: "Index"},
	)
	var buf bytes.Buffer
	require.NoError(t, NewReducer().Run(context.Background(), &buf, c))

	out := buf.String()
	assert.Contains(t, out, "# wave (100 -> 10 points)\n")
	assert.Contains(t, out, "# ramp{host=\"a\"} (100 -> 10 points)\n")
	assert.Equal(t, 23, strings.Count(out, "\n"))
}

func TestReducer_RunInvalidExpression(t *testing.T) {
	c := newConfig(10, config.SeriesDefinition{Name: "bad", Expression: "Index +"})
	var buf bytes.Buffer
	require.Error(t, NewReducer().Run(context.Background(), &buf, c))
	assert.Empty(t, buf.String())
}

func TestReducer_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newConfig(10, config.SeriesDefinition{Name: "ramp", Expression: "Index"})
	require.ErrorIs(t, NewReducer().Run(ctx, &bytes.Buffer{}, c), context.Canceled)
}

func TestNewDownsampler(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := newDownsampler(1, 4, reg)
	_, err := d.Downsample(nil, 10)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "lttb_downsample_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
