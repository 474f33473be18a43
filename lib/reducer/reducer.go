package reducer

import (
	"context"
	"github.com/dustin/go-humanize"
	"github.com/kadaan/lttb/config"
	"github.com/kadaan/lttb/lib/command"
	"github.com/kadaan/lttb/lib/downsample"
	"github.com/kadaan/lttb/lib/errors"
	"github.com/kadaan/lttb/lib/output"
	"github.com/kadaan/lttb/lib/sampler"
	"github.com/kadaan/lttb/lib/series"
	"github.com/prometheus/client_golang/prometheus"
	"io"
	"k8s.io/klog/v2"
)

func NewReducer() command.Task[config.DownsampleConfig] {
	return &reducer{}
}

type reducer struct {
}

func (t *reducer) Run(ctx context.Context, out io.Writer, c *config.DownsampleConfig) error {
	writer, err := output.NewWriter(c.OutputFormat, out)
	if err != nil {
		return err
	}
	generator, err := series.NewGenerator(c)
	if err != nil {
		return errors.Wrap(err, "failed to create generator")
	}
	input, err := generator.Generate(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return errors.Wrap(err, "failed to generate series")
	}

	registry := prometheus.NewRegistry()
	s := sampler.NewSampler(newDownsampler(len(input), int(c.Parallelism), registry), c.Threshold, int(c.Parallelism))
	results, sampleErr := s.Sample(ctx, input)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := writer.Write(results); err != nil {
		return err
	}
	logSummary(registry)
	return sampleErr
}

// newDownsampler spreads the bucket sums over goroutines only when there
// are fewer series than workers.
func newDownsampler(seriesCount int, parallelism int, reg prometheus.Registerer) downsample.Downsampler {
	var d downsample.Downsampler
	if seriesCount < parallelism {
		d = downsample.NewParallelLttbDownsampler(parallelism)
	} else {
		d = downsample.NewLttbDownsampler()
	}
	return downsample.NewInstrumentedDownsampler(d, reg)
}

func logSummary(registry *prometheus.Registry) {
	if !klog.V(1).Enabled() {
		return
	}
	families, err := registry.Gather()
	if err != nil {
		klog.Warningf("Failed to gather metrics: %s", err)
		return
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				klog.Infof("%s: %s", family.GetName(), humanize.Comma(int64(m.GetCounter().GetValue())))
			case m.GetHistogram() != nil:
				klog.Infof("%s: %s observations, %.6fs total", family.GetName(), humanize.Comma(int64(m.GetHistogram().GetSampleCount())), m.GetHistogram().GetSampleSum())
			}
		}
	}
}
