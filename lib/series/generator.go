package series

import (
	"context"
	"github.com/PaesslerAG/gval"
	"github.com/kadaan/lttb/config"
	"github.com/kadaan/lttb/lib/common"
	"github.com/kadaan/lttb/lib/downsample"
	"github.com/kadaan/lttb/lib/errors"
	"github.com/shopspring/decimal"
	"k8s.io/klog/v2"
	"math"
	"regexp"
	"time"
)

var (
	expressionLanguage = gval.Full(
		gval.Function("Abs", math.Abs),
		gval.Function("Cbrt", math.Cbrt),
		gval.Function("Ceil", math.Ceil),
		gval.Function("Cos", math.Cos),
		gval.Function("Exp", math.Exp),
		gval.Function("Floor", math.Floor),
		gval.Function("Hypot", math.Hypot),
		gval.Function("Log", math.Log),
		gval.Function("Log10", math.Log10),
		gval.Function("Log2", math.Log2),
		gval.Function("Max", math.Max),
		gval.Function("Min", math.Min),
		gval.Function("Mod", math.Mod),
		gval.Function("NaN", math.NaN),
		gval.Function("Pow", math.Pow),
		gval.Function("Round", math.Round),
		gval.Function("Sin", math.Sin),
		gval.Function("Sqrt", math.Sqrt),
		gval.Function("Tan", math.Tan),
		gval.Function("Trunc", math.Trunc))
)

type Generator interface {
	Generate(ctx context.Context) ([]*Series, error)
}

type generator struct {
	start    time.Time
	end      time.Time
	step     time.Duration
	families []*family
}

type family struct {
	name           string
	expression     gval.Evaluable
	expressionText string
	labelSets      []map[string]string
}

// state is the parameter the expressions are evaluated against.
type state struct {
	Name      string
	Labels    map[string]string
	Index     float64
	Timestamp float64
	Last      float64
}

// NewGenerator prepares one family per configured time series whose name is
// matched by c.SeriesFilters.
func NewGenerator(c *config.DownsampleConfig) (Generator, error) {
	if c.Start.Unix() < 0 {
		return nil, errors.New("start time %s is before the unix epoch", c.Start.Format(time.RFC3339))
	}
	if c.SampleInterval < time.Second {
		return nil, errors.New("sample interval %s is shorter than 1s", c.SampleInterval)
	}
	var families []*family
	var errs []error
	for _, def := range c.SeriesConfig.TimeSeries {
		if !matches(c.SeriesFilters, def.Name) {
			klog.V(1).Infof("Skipping time series %q", def.Name)
			continue
		}
		expression, err := getExpressionEngine(def.Expression)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		labelSets := def.Labels
		if len(labelSets) == 0 {
			labelSets = []map[string]string{{}}
		}
		families = append(families, &family{
			name:           def.Name,
			expression:     expression,
			expressionText: def.Expression,
			labelSets:      labelSets,
		})
	}
	if err := errors.NewMulti(errs, "failed to prepare time series"); err != nil {
		return nil, err
	}
	return &generator{
		start:    c.Start,
		end:      c.End,
		step:     c.SampleInterval,
		families: families,
	}, nil
}

func (g *generator) Generate(ctx context.Context) ([]*Series, error) {
	klog.V(0).Infof("Generating samples %s", common.FormatDateRange(g.start.Unix(), g.end.Unix()))
	var result []*Series
	for _, f := range g.families {
		for _, labels := range f.labelSets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s, err := g.generateSeries(ctx, f, labels)
			if err != nil {
				return nil, err
			}
			klog.V(1).Infof("Generated %d samples for %s", len(s.Points), s)
			result = append(result, s)
		}
	}
	return result, nil
}

func (g *generator) generateSeries(ctx context.Context, f *family, labels map[string]string) (*Series, error) {
	s := New(f.name, labels)
	st := &state{
		Name:   f.name,
		Labels: labels,
	}
	for ts := g.start; ts.Before(g.end); ts = ts.Add(g.step) {
		st.Timestamp = float64(ts.Unix())
		value, err := f.expression.EvalFloat64(ctx, st)
		if err != nil {
			return nil, errors.Wrap(err, "failed to evaluate expression %s for %s", f.expressionText, s)
		}
		st.Last = value
		st.Index += 1
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		s.Points = append(s.Points, downsample.NewDataPoint(ts, decimal.NewFromFloat(value)))
	}
	return s, nil
}

func getExpressionEngine(expression string) (gval.Evaluable, error) {
	evaluable, err := expressionLanguage.NewEvaluable(expression)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse expression: '%s'", expression)
	}
	return evaluable, nil
}

func matches(filters []*regexp.Regexp, name string) bool {
	if len(filters) == 0 {
		return true
	}
	return config.MatchesAny(filters, name)
}
