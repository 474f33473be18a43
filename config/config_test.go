package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func TestParseSeriesConfig(t *testing.T) {
	c, err := ParseSeriesConfig([]byte(`
timeSeries:
  - name: cpu
    labels:
      - host: a
      - host: b
    expression: "Sin(Index / 10) * 10 + 50"
  - name: ramp
    expression: Index
`))
	require.NoError(t, err)
	require.Len(t, c.TimeSeries, 2)
	assert.Equal(t, "cpu", c.TimeSeries[0].Name)
	assert.Equal(t, []map[string]string{{"host": "a"}, {"host": "b"}}, c.TimeSeries[0].Labels)
	assert.Equal(t, "Sin(Index / 10) * 10 + 50", c.TimeSeries[0].Expression)
	assert.Empty(t, c.TimeSeries[1].Labels)
}

func TestParseSeriesConfig_Invalid(t *testing.T) {
	_, err := ParseSeriesConfig([]byte(`timeSeries: []`))
	require.Error(t, err)

	_, err = ParseSeriesConfig([]byte(`timeSeries: [`))
	require.Error(t, err)

	_, err = ParseSeriesConfig([]byte(`
timeSeries:
  - expression: Index
  - name: nothing
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time series 0 has no name")
	assert.Contains(t, err.Error(), `time series 1 ("nothing") has no expression`)
}

func TestSeriesConfigValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeSeries:\n  - name: ramp\n    expression: Index\n"), 0o600))

	var c SeriesConfig
	v := NewSeriesConfigValue(&c)
	assert.Equal(t, "", v.String())
	require.NoError(t, v.Set(path))
	require.Len(t, c.TimeSeries, 1)
	assert.Equal(t, path+" (1 time series)", v.String())

	require.Error(t, v.Set(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestTimeValue(t *testing.T) {
	var ts time.Time
	v := NewTimeValue(&ts, time.Unix(10, 0))
	assert.True(t, ts.Equal(time.Unix(10, 0)))

	require.NoError(t, v.Set("1650000000"))
	assert.True(t, ts.Equal(time.Unix(1_650_000_000, 0)))
	assert.Equal(t, time.UTC, ts.Location())

	require.NoError(t, v.Set("2022-03-01T10:00:00Z"))
	assert.True(t, ts.Equal(time.Date(2022, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "timestamp", v.Type())
}

func TestOutputFormat(t *testing.T) {
	var f OutputFormat
	v := NewOutputFormatValue(&f, Text)
	assert.Equal(t, "text", v.String())

	require.NoError(t, v.Set("json"))
	assert.Equal(t, Json, f)
	require.Error(t, v.Set("xml"))
	assert.Equal(t, Json, f)
}

func TestRegexValue(t *testing.T) {
	var filters []*regexp.Regexp
	v := NewRegexValue(&filters, defaultSeriesFilters)
	assert.True(t, MatchesAny(filters, "anything"))
	assert.False(t, MatchesAny(filters, ""))

	require.NoError(t, v.Set("cpu_.*"))
	require.NoError(t, v.Set("mem"))
	assert.Equal(t, "^(?:cpu_.*)$,^(?:mem)$", v.String())
	assert.True(t, MatchesAny(filters, "cpu_user"))
	assert.True(t, MatchesAny(filters, "mem"))
	assert.False(t, MatchesAny(filters, "memory"))

	require.Error(t, v.Set("("))
}

func TestDurationValue(t *testing.T) {
	var d time.Duration
	v := NewDurationValue(&d, time.Minute)
	assert.Equal(t, "1m", v.String())

	require.NoError(t, v.Set("1d"))
	assert.Equal(t, 24*time.Hour, d)
	require.NoError(t, v.Set("1h30m"))
	assert.Equal(t, 90*time.Minute, d)
	require.Error(t, v.Set("soon"))
}
