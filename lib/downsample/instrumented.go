package downsample

import (
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

const (
	metricNamespace = "lttb"
	metricSubsystem = "downsample"
)

type instrumented struct {
	downsampler  Downsampler
	calls        prometheus.Counter
	failures     prometheus.Counter
	inputPoints  prometheus.Counter
	outputPoints prometheus.Counter
	duration     prometheus.Histogram
}

// NewInstrumentedDownsampler wraps d and registers its metrics with reg.
// A nil reg leaves the metrics unregistered.
func NewInstrumentedDownsampler(d Downsampler, reg prometheus.Registerer) Downsampler {
	m := &instrumented{
		downsampler: d,
		calls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "calls_total",
			Help:      "Total number of downsample calls.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "failures_total",
			Help:      "Total number of downsample calls that returned an error.",
		}),
		inputPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "input_points_total",
			Help:      "Total number of points passed to the downsampler.",
		}),
		outputPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "output_points_total",
			Help:      "Total number of points returned by the downsampler.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "duration_seconds",
			Help:      "Time spent downsampling a single series.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.failures, m.inputPoints, m.outputPoints, m.duration)
	}
	return m
}

func (m *instrumented) Downsample(points []DataPoint, threshold int) ([]DataOutput, error) {
	start := time.Now()
	m.calls.Inc()
	m.inputPoints.Add(float64(len(points)))
	result, err := m.downsampler.Downsample(points, threshold)
	m.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.failures.Inc()
		return nil, err
	}
	m.outputPoints.Add(float64(len(result)))
	return result, nil
}
