package config

import (
	"github.com/kadaan/lttb/lib/errors"
	"github.com/prometheus/common/model"
	"time"
)

// durationValue accepts prometheus style durations such as "90s", "1h30m",
// "1d" or "2w".
type durationValue time.Duration

func NewDurationValue(p *time.Duration, val time.Duration) *durationValue {
	*p = val
	return (*durationValue)(p)
}

// String is used both by fmt.Print and by Cobra in help text
func (e *durationValue) String() string {
	return model.Duration(*e).String()
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (e *durationValue) Set(v string) error {
	d, err := model.ParseDuration(v)
	if err != nil {
		return errors.Wrap(err, "cannot parse %q to a valid duration", v)
	}
	*e = durationValue(d)
	return nil
}

// Type is only used in help text
func (e *durationValue) Type() string {
	return "duration"
}
