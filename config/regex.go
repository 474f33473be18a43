package config

import (
	"github.com/kadaan/lttb/lib/errors"
	"regexp"
	"strings"
)

type regexArrayValue struct {
	value   *[]*regexp.Regexp
	changed bool
}

func NewRegexValue(p *[]*regexp.Regexp, val []*regexp.Regexp) *regexArrayValue {
	*p = val
	return &regexArrayValue{value: p}
}

// String is used both by fmt.Print and by Cobra in help text
func (e *regexArrayValue) String() string {
	patterns := make([]string, len(*e.value))
	for i, r := range *e.value {
		patterns[i] = r.String()
	}
	return strings.Join(patterns, ",")
}

// Set must have pointer receiver, so it doesn't change the value of a copy.
// The first call replaces the defaults, later calls append.
func (e *regexArrayValue) Set(v string) error {
	regex, err := regexp.Compile("^(?:" + v + ")$")
	if err != nil {
		return errors.Wrap(err, "cannot parse %q to a valid regex", v)
	}
	if !e.changed {
		*e.value = []*regexp.Regexp{regex}
		e.changed = true
	} else {
		*e.value = append(*e.value, regex)
	}
	return nil
}

// Type is only used in help text
func (e *regexArrayValue) Type() string {
	return "regex"
}

// MatchesAny reports whether value is matched by at least one of filters.
func MatchesAny(filters []*regexp.Regexp, value string) bool {
	for _, f := range filters {
		if f.MatchString(value) {
			return true
		}
	}
	return false
}
