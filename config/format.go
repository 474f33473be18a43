package config

import (
	"github.com/kadaan/lttb/lib/errors"
)

type OutputFormat string

const (
	Text OutputFormat = "text"
	Json OutputFormat = "json"
)

func NewOutputFormatValue(p *OutputFormat, val OutputFormat) *OutputFormat {
	*p = val
	return p
}

// String is used both by fmt.Print and by Cobra in help text
func (e *OutputFormat) String() string {
	return string(*e)
}

// Set must have pointer receiver so it doesn't change the value of a copy
func (e *OutputFormat) Set(v string) error {
	switch OutputFormat(v) {
	case Text, Json:
		*e = OutputFormat(v)
		return nil
	default:
		return errors.New(`must be one of %q or %q`, Text, Json)
	}
}

// Type is only used in help text
func (e *OutputFormat) Type() string {
	return "format"
}
