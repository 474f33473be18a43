package downsample

import (
	"fmt"
	"github.com/shopspring/decimal"
	"math"
	"time"
)

// TimeAdapter converts an external time representation to and from whole
// seconds since the Unix epoch.
type TimeAdapter[T any] interface {
	// EpochSeconds panics if t is before the epoch.
	EpochSeconds(t T) int64

	// FromEpochSeconds panics if s cannot be represented as a T.
	FromEpochSeconds(s int64) T
}

var (
	SystemTime TimeAdapter[time.Time] = systemTime{}
	UnixMillis TimeAdapter[int64]     = unixMillis{}
)

type systemTime struct{}

func (systemTime) EpochSeconds(t time.Time) int64 {
	s := t.Unix()
	if s < 0 {
		panic(fmt.Sprintf("time %s is before the unix epoch", t.UTC().Format(time.RFC3339)))
	}
	return s
}

func (systemTime) FromEpochSeconds(s int64) time.Time {
	if s < 0 {
		panic(fmt.Sprintf("epoch seconds %d is before the unix epoch", s))
	}
	return time.Unix(s, 0).UTC()
}

type unixMillis struct{}

func (unixMillis) EpochSeconds(t int64) int64 {
	if t < 0 {
		panic(fmt.Sprintf("timestamp %dms is before the unix epoch", t))
	}
	return t / 1000
}

func (unixMillis) FromEpochSeconds(s int64) int64 {
	if s < 0 || s > math.MaxInt64/1000 {
		panic(fmt.Sprintf("epoch seconds %d does not fit in a millisecond timestamp", s))
	}
	return s * 1000
}

// DataPoint is a single sample of a time series. X holds whole seconds since
// the unix epoch.
type DataPoint struct {
	x decimal.Decimal
	y decimal.Decimal
}

// NewDataPoint panics if t is before the unix epoch.
func NewDataPoint(t time.Time, y decimal.Decimal) DataPoint {
	return NewDataPointFrom(SystemTime, t, y)
}

func NewDataPointFrom[T any](a TimeAdapter[T], t T, y decimal.Decimal) DataPoint {
	return DataPoint{
		x: decimal.NewFromInt(a.EpochSeconds(t)),
		y: y,
	}
}

func (p DataPoint) X() decimal.Decimal {
	return p.x
}

func (p DataPoint) Y() decimal.Decimal {
	return p.y
}

func (p DataPoint) String() string {
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// DataOutput is a DataPoint projected back onto wall clock time.
type DataOutput struct {
	X time.Time
	Y decimal.Decimal
}

func NewDataOutput(p DataPoint) DataOutput {
	return DataOutput{
		X: TimeOf(SystemTime, p),
		Y: p.y,
	}
}

// TimeOf panics if the x coordinate of p is not a whole number of seconds
// that fits in an int64.
func TimeOf[T any](a TimeAdapter[T], p DataPoint) T {
	if !p.x.IsInteger() {
		panic(fmt.Sprintf("x coordinate %s is not a whole number of seconds", p.x))
	}
	if p.x.GreaterThan(maxEpochSeconds) || p.x.IsNegative() {
		panic(fmt.Sprintf("x coordinate %s does not fit in epoch seconds", p.x))
	}
	return a.FromEpochSeconds(p.x.IntPart())
}

var maxEpochSeconds = decimal.NewFromInt(math.MaxInt64)

func toOutputs(points []DataPoint) []DataOutput {
	outputs := make([]DataOutput, len(points))
	for i, p := range points {
		outputs[i] = NewDataOutput(p)
	}
	return outputs
}
