package config

import (
	"fmt"
	"github.com/ghodss/yaml"
	"github.com/kadaan/lttb/lib/errors"
	"os"
)

// SeriesDefinition describes one family of synthetic series. Every label set
// produces its own series; no label sets produces a single unlabeled series.
type SeriesDefinition struct {
	Name       string              `json:"name"`
	Labels     []map[string]string `json:"labels"`
	Expression string              `json:"expression"`
}

type SeriesConfig struct {
	TimeSeries []SeriesDefinition `json:"timeSeries"`
}

func (c SeriesConfig) Validate() error {
	if len(c.TimeSeries) == 0 {
		return errors.New("no time series defined")
	}
	var errs []error
	for i, def := range c.TimeSeries {
		if def.Name == "" {
			errs = append(errs, errors.New("time series %d has no name", i))
		}
		if def.Expression == "" {
			errs = append(errs, errors.New("time series %d (%q) has no expression", i, def.Name))
		}
	}
	return errors.NewMulti(errs, "invalid series config")
}

func ParseSeriesConfig(data []byte) (SeriesConfig, error) {
	var seriesConfig SeriesConfig
	if err := yaml.Unmarshal(data, &seriesConfig); err != nil {
		return SeriesConfig{}, errors.Wrap(err, "could not parse series config")
	}
	if err := seriesConfig.Validate(); err != nil {
		return SeriesConfig{}, err
	}
	return seriesConfig, nil
}

type seriesConfigValue struct {
	value *SeriesConfig
	path  string
}

func NewSeriesConfigValue(p *SeriesConfig) *seriesConfigValue {
	*p = SeriesConfig{}
	return &seriesConfigValue{value: p}
}

// String is used both by fmt.Print and by Cobra in help text
func (e *seriesConfigValue) String() string {
	if len(e.value.TimeSeries) == 0 {
		return ""
	}
	return fmt.Sprintf("%s (%d time series)", e.path, len(e.value.TimeSeries))
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (e *seriesConfigValue) Set(v string) error {
	data, err := os.ReadFile(v)
	if err != nil {
		return errors.Wrap(err, "could not read file %s", v)
	}
	seriesConfig, err := ParseSeriesConfig(data)
	if err != nil {
		return errors.Wrap(err, "could not load file %s", v)
	}
	*e.value = seriesConfig
	e.path = v
	return nil
}

// Type is only used in help text
func (e *seriesConfigValue) Type() string {
	return "seriesConfig"
}
