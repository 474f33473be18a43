package errors

import (
	"fmt"
	"github.com/hashicorp/go-multierror"
	"github.com/kadaan/tracerr"
)

var (
	customTracerr = tracerr.NewTracerr(tracerr.DefaultFrameCapacity, tracerr.DefaultFrameSkipCount+1)
)

func New(message string, a ...any) tracerr.Error {
	return customTracerr.New(fmt.Sprintf(message, a...))
}

// NewMulti returns nil when errs holds no non-nil error.
func NewMulti(errs []error, message string, a ...any) tracerr.Error {
	var multiError *multierror.Error
	for _, err := range errs {
		if err != nil {
			multiError = multierror.Append(multiError, err)
		}
	}
	if multiError == nil {
		return nil
	}
	return customTracerr.Wrap(fmt.Errorf("%s: %w", fmt.Sprintf(message, a...), multiError))
}

func Wrap(err error, message string, a ...any) tracerr.Error {
	if err == nil {
		return nil
	}
	return customTracerr.Wrap(fmt.Errorf("%s: %w", fmt.Sprintf(message, a...), err))
}
