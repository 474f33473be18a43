package sampler

import (
	"context"
	"fmt"
	"github.com/kadaan/lttb/lib/downsample"
	"github.com/kadaan/lttb/lib/series"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func newSeries(name string, n int) *series.Series {
	s := series.New(name, map[string]string{"n": fmt.Sprint(n)})
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, downsample.NewDataPoint(time.Unix(int64(i)*60, 0), decimal.NewFromInt(int64(i%7))))
	}
	return s
}

type failingDownsampler struct {
	downsample.Downsampler
	failOn int
}

func (f *failingDownsampler) Downsample(points []downsample.DataPoint, threshold int) ([]downsample.DataOutput, error) {
	if len(points) == f.failOn {
		return nil, &downsample.InvalidThresholdError{Threshold: threshold, Size: len(points)}
	}
	return f.Downsampler.Downsample(points, threshold)
}

func TestSampler_Sample(t *testing.T) {
	input := []*series.Series{newSeries("a", 100), newSeries("b", 5), newSeries("c", 1000)}
	s := NewSampler(downsample.NewLttbDownsampler(), 10, 2)

	results, err := s.Sample(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Same(t, input[i], r.Series)
	}
	assert.Len(t, results[0].Points, 10)
	assert.Len(t, results[1].Points, 5)
	assert.Len(t, results[2].Points, 10)
}

func TestSampler_CollectsFailures(t *testing.T) {
	input := []*series.Series{newSeries("a", 100), newSeries("b", 50), newSeries("c", 30)}
	s := NewSampler(&failingDownsampler{Downsampler: downsample.NewLttbDownsampler(), failOn: 50}, 10, 4)

	results, err := s.Sample(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to downsample 1 of 3 series")
	assert.Contains(t, err.Error(), `b{n="50"}`)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Series.Name)
	assert.Equal(t, "c", results[1].Series.Name)
}

func TestSampler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewSampler(downsample.NewLttbDownsampler(), 10, 1).Sample(ctx, []*series.Series{newSeries("a", 100)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
