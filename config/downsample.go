package config

import (
	"regexp"
	"time"
)

const (
	DefaultThreshold   = 500
	DefaultParallelism = 4
)

// DownsampleConfig represents the configuration of the downsample command.
type DownsampleConfig struct {
	Start          time.Time
	End            time.Time
	SampleInterval time.Duration
	Threshold      int
	SeriesConfig   SeriesConfig
	SeriesFilters  []*regexp.Regexp
	Parallelism    uint8
	OutputFormat   OutputFormat
}
