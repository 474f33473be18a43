package downsample

import (
	"golang.org/x/sync/errgroup"
	"runtime"
)

type summer func(points []DataPoint, b buckets) ([]bucketSum, error)

func NewLttbDownsampler() Downsampler {
	return &lttb{
		sums: sequentialSums,
	}
}

// NewParallelLttbDownsampler computes the bucket sums with up to
// parallelism goroutines. Point selection still runs left to right, so the
// result is identical to NewLttbDownsampler.
func NewParallelLttbDownsampler(parallelism int) Downsampler {
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	return &lttb{
		sums: parallelSums(parallelism),
	}
}

type lttb struct {
	sums summer
}

func (d *lttb) Downsample(points []DataPoint, threshold int) ([]DataOutput, error) {
	sourcePointCount := len(points)
	if threshold < 0 {
		return nil, &InvalidThresholdError{Threshold: threshold, Size: sourcePointCount}
	}
	if threshold >= sourcePointCount || threshold == 0 {
		return toOutputs(points), nil
	}
	if threshold == 1 {
		return nil, &InvalidThresholdError{Threshold: threshold, Size: sourcePointCount}
	}

	sampledData := make([]DataPoint, 0, threshold)
	sampledData = append(sampledData, points[0])

	if threshold > 2 {
		b := newBuckets(sourcePointCount, threshold)
		bucketSums, err := d.sums(points, b)
		if err != nil {
			return nil, err
		}

		var prevMaxAreaPoint int
		for i := 0; i < b.count; i++ {
			currBucketStart, currBucketEnd := b.candidates(i)
			if currBucketStart >= currBucketEnd {
				return nil, b.invalid()
			}
			pointA := points[prevMaxAreaPoint]

			maxArea := minusOne
			maxAreaPoint := currBucketStart
			for ; currBucketStart < currBucketEnd; currBucketStart++ {
				area := calculateTriangleArea(pointA, bucketSums[i], points[currBucketStart])
				if area.GreaterThan(maxArea) {
					maxArea = area
					maxAreaPoint = currBucketStart
				}
			}

			sampledData = append(sampledData, points[maxAreaPoint])
			prevMaxAreaPoint = maxAreaPoint
		}
	}

	sampledData = append(sampledData, points[sourcePointCount-1])
	return toOutputs(sampledData), nil
}

func sequentialSums(points []DataPoint, b buckets) ([]bucketSum, error) {
	bucketSums := make([]bucketSum, b.count)
	for i := range bucketSums {
		sum, err := bucketTotal(points, b, i)
		if err != nil {
			return nil, err
		}
		bucketSums[i] = sum
	}
	return bucketSums, nil
}

func parallelSums(parallelism int) summer {
	return func(points []DataPoint, b buckets) ([]bucketSum, error) {
		bucketSums := make([]bucketSum, b.count)
		chunkSize := (b.count + parallelism - 1) / parallelism

		var g errgroup.Group
		g.SetLimit(parallelism)
		for start := 0; start < b.count; start += chunkSize {
			end := min(start+chunkSize, b.count)
			g.Go(func() error {
				for i := start; i < end; i++ {
					sum, err := bucketTotal(points, b, i)
					if err != nil {
						return err
					}
					bucketSums[i] = sum
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return bucketSums, nil
	}
}
