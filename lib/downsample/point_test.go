package downsample

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
	"time"
)

func TestNewDataPoint_TruncatesToSeconds(t *testing.T) {
	ts := time.Date(2022, 3, 1, 12, 30, 15, 999_000_000, time.FixedZone("CET", 3600))
	p := NewDataPoint(ts, decimal.RequireFromString("1.25"))

	assert.True(t, p.X().Equal(decimal.NewFromInt(ts.Unix())))
	assert.True(t, p.Y().Equal(decimal.RequireFromString("1.25")))

	out := NewDataOutput(p)
	assert.Equal(t, time.UTC, out.X.Location())
	assert.True(t, out.X.Equal(ts.Truncate(time.Second)))
	assert.True(t, out.Y.Equal(p.Y()))
}

func TestNewDataPoint_BeforeEpochPanics(t *testing.T) {
	require.Panics(t, func() {
		NewDataPoint(time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC), decimal.Zero)
	})
	require.NotPanics(t, func() {
		NewDataPoint(time.Unix(0, 0), decimal.Zero)
	})
}

func TestUnixMillis(t *testing.T) {
	p := NewDataPointFrom(UnixMillis, 1_650_000_000_999, decimal.NewFromInt(3))
	assert.True(t, p.X().Equal(decimal.NewFromInt(1_650_000_000)))
	assert.Equal(t, int64(1_650_000_000_000), TimeOf(UnixMillis, p))

	require.Panics(t, func() {
		NewDataPointFrom(UnixMillis, -1, decimal.Zero)
	})
}

func TestTimeOf_UnrepresentablePanics(t *testing.T) {
	testCases := []struct {
		name string
		x    decimal.Decimal
	}{
		{name: "fractional seconds", x: decimal.RequireFromString("1.5")},
		{name: "beyond int64", x: decimal.NewFromInt(math.MaxInt64).Add(decimal.NewFromInt(1))},
		{name: "negative", x: decimal.NewFromInt(-1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DataPoint{x: tc.x, y: decimal.Zero}
			require.Panics(t, func() {
				NewDataOutput(p)
			})
		})
	}

	require.Panics(t, func() {
		TimeOf(UnixMillis, DataPoint{x: decimal.NewFromInt(math.MaxInt64 / 100), y: decimal.Zero})
	})
}
