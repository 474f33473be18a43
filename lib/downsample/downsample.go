package downsample

import (
	"fmt"
	"github.com/shopspring/decimal"
)

type Downsampler interface {
	Downsample(points []DataPoint, threshold int) ([]DataOutput, error)
}

// InvalidThresholdError is returned when a threshold cannot be applied to an
// input of the given size.
type InvalidThresholdError struct {
	Threshold int
	Size      int
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %d for input size %d", e.Threshold, e.Size)
}

var (
	minusOne = decimal.NewFromInt(-1)
	half     = decimal.New(5, -1)
)

// bucketSum holds the coordinate sums of an averaging range and its length.
// The average itself is never divided out, so areas stay exact.
type bucketSum struct {
	X     decimal.Decimal
	Y     decimal.Decimal
	Count decimal.Decimal
}

// buckets partitions the points between the first and last into count
// buckets of fractional width (n-2)/count.
type buckets struct {
	n       int
	count   int
	span    decimal.Decimal
	divisor decimal.Decimal
}

func newBuckets(n int, threshold int) buckets {
	return buckets{
		n:       n,
		count:   threshold - 2,
		span:    decimal.NewFromInt(int64(n - 2)),
		divisor: decimal.NewFromInt(int64(threshold - 2)),
	}
}

// boundary returns floor(k*every)+1 without rounding every first.
func (b buckets) boundary(k int) int {
	q, _ := decimal.NewFromInt(int64(k)).Mul(b.span).QuoRem(b.divisor, 0)
	return int(q.IntPart()) + 1
}

func (b buckets) candidates(i int) (int, int) {
	return b.boundary(i), b.boundary(i + 1)
}

func (b buckets) averageRange(i int) (int, int) {
	end := b.boundary(i + 2)
	if end > b.n {
		end = b.n
	}
	return b.boundary(i + 1), end
}

func (b buckets) invalid() error {
	return &InvalidThresholdError{Threshold: b.count + 2, Size: b.n}
}

func calculateBucketSum(points []DataPoint) (sum bucketSum) {
	sum.X = decimal.Zero
	sum.Y = decimal.Zero
	for _, p := range points {
		sum.X = sum.X.Add(p.x)
		sum.Y = sum.Y.Add(p.y)
	}
	sum.Count = decimal.NewFromInt(int64(len(points)))
	return sum
}

func bucketTotal(points []DataPoint, b buckets, i int) (bucketSum, error) {
	start, end := b.averageRange(i)
	if start >= end {
		return bucketSum{}, b.invalid()
	}
	return calculateBucketSum(points[start:end]), nil
}

// calculateTriangleArea returns the area of the triangle spanned by the
// pivot pa, the candidate pc and the average of pb, scaled by pb.Count.
// The scale is the same for every candidate of a bucket.
func calculateTriangleArea(pa DataPoint, pb bucketSum, pc DataPoint) decimal.Decimal {
	k := pa.x.Mul(pb.Count).Sub(pb.X).Mul(pc.y.Sub(pa.y))
	n := pa.x.Sub(pc.x).Mul(pb.Y.Sub(pa.y.Mul(pb.Count)))
	return k.Sub(n).Abs().Mul(half)
}
