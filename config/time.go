package config

import (
	"fmt"
	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"github.com/kadaan/lttb/lib/errors"
	"github.com/tj/go-naturaldate"
	"strconv"
	"time"
)

var (
	Now = time.Now().UTC()
)

type timeValue struct {
	value *time.Time
	now   func() time.Time
}

func NewTimeValue(p *time.Time, val time.Time) *timeValue {
	*p = val
	return &timeValue{
		value: p,
		now: func() time.Time {
			return Now
		},
	}
}

// String is used both by fmt.Print and by Cobra in help text
func (e *timeValue) String() string {
	return fmt.Sprintf("\"%s\"", humanize.RelTime(*e.value, e.now(), "ago", "from now"))
}

// Set must have pointer receiver, so it doesn't change the value of a copy.
// Plain integers are read as seconds since the unix epoch.
func (e *timeValue) Set(v string) error {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		*e.value = time.Unix(i, 0).UTC()
		return nil
	}
	if t, err := dateparse.ParseStrict(v); err == nil {
		*e.value = t.UTC()
		return nil
	}
	t, err := naturaldate.Parse(v, e.now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return errors.Wrap(err, "cannot parse %q to a valid timestamp", v)
	}
	*e.value = t.UTC()
	return nil
}

// Type is only used in help text
func (e *timeValue) Type() string {
	return "timestamp"
}
