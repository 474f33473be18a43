package cmd

import (
	"github.com/kadaan/lttb/lib/command"
	"github.com/kadaan/lttb/version"
)

var (
	Root = command.NewRootCommand(
		"time series downsampling",
		version.Name+` reduces time series to a target number of points with the
Largest-Triangle-Three-Buckets algorithm, keeping the visual shape of
the original series.`)
)
