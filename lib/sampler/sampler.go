package sampler

import (
	"context"
	"github.com/kadaan/lttb/lib/downsample"
	"github.com/kadaan/lttb/lib/errors"
	"github.com/kadaan/lttb/lib/series"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Result holds the downsampled points of a single series.
type Result struct {
	Series *series.Series
	Points []downsample.DataOutput
}

type Sampler interface {
	Sample(ctx context.Context, input []*series.Series) ([]Result, error)
}

type sampler struct {
	downsampler downsample.Downsampler
	threshold   int
	parallelism int
}

func NewSampler(d downsample.Downsampler, threshold int, parallelism int) Sampler {
	if parallelism < 1 {
		parallelism = 1
	}
	return &sampler{
		downsampler: d,
		threshold:   threshold,
		parallelism: parallelism,
	}
}

// Sample downsamples every series. Results are in input order. Failed series
// are left out and reported together in the returned error.
func (s *sampler) Sample(ctx context.Context, input []*series.Series) ([]Result, error) {
	results := make([]Result, len(input))
	errs := make([]error, len(input))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, in := range input {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			points, err := s.downsampler.Downsample(in.Points, s.threshold)
			if err != nil {
				errs[i] = errors.Wrap(err, "failed to downsample %s", in)
				return nil
			}
			klog.V(1).Infof("Downsampled %s from %d to %d points", in, len(in.Points), len(points))
			results[i] = Result{Series: in, Points: points}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sampled := make([]Result, 0, len(results))
	for i, r := range results {
		if errs[i] == nil {
			sampled = append(sampled, r)
		}
	}
	return sampled, errors.NewMulti(errs, "failed to downsample %d of %d series", countErrors(errs), len(input))
}

func countErrors(errs []error) int {
	count := 0
	for _, err := range errs {
		if err != nil {
			count++
		}
	}
	return count
}
