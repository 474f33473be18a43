package cmd

import (
	"github.com/kadaan/lttb/config"
	"github.com/kadaan/lttb/lib/command"
	"github.com/kadaan/lttb/lib/reducer"
)

func init() {
	command.NewCommand(
		Root,
		"downsample",
		"Downsample generated time series",
		`Generates the time series defined in the series config file and
prints them reduced to the threshold number of points.`,
		new(config.DownsampleConfig),
		reducer.NewReducer()).Configure(func(fb config.FlagBuilder, cfg *config.DownsampleConfig) {
		fb.TimeRange(&cfg.Start, &cfg.End, "time to generate samples")
		fb.SampleInterval(&cfg.SampleInterval, "interval between generated samples")
		fb.SeriesConfig(&cfg.SeriesConfig, "config file defining the time series to generate").Required()
		fb.SeriesFilters(&cfg.SeriesFilters, "regex the name of a time series must match to be downsampled")
		fb.Threshold(&cfg.Threshold, "number of points to keep per series (0 keeps every point)")
		fb.Parallelism(&cfg.Parallelism, config.DefaultParallelism, "number of series downsampled concurrently")
		fb.OutputFormat(&cfg.OutputFormat, `format of the output. allowed: "text", "json"`)
	})
}
