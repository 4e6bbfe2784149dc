package main

import (
	"github.com/pkg/errors"
)

// failure kinds, match them with errors.Is
var (
	errFatalInit   = errors.New("fatal init failure")
	errDegraded    = errors.New("degraded feature")
	errTransientIO = errors.New("transient i/o failure")
	errStream      = errors.New("stream failure")
)

type failure struct {
	kind error
	op   string
	err  error
}

func (f *failure) Error() string {
	return f.op + ": " + f.kind.Error() + ": " + f.err.Error()
}

func (f *failure) Unwrap() error {
	return f.err
}

func (f *failure) Is(target error) bool {
	return target == f.kind
}

func newFailure(kind error, op string, err error) error {
	if err == nil {
		err = errors.New("unknown")
	}
	return errors.WithStack(&failure{kind: kind, op: op, err: err})
}

func fatalInit(op string, err error) error {
	return newFailure(errFatalInit, op, err)
}

func degraded(op string, err error) error {
	return newFailure(errDegraded, op, err)
}

func transientIO(op string, err error) error {
	return newFailure(errTransientIO, op, err)
}

func streamFailure(op string, err error) error {
	return newFailure(errStream, op, err)
}

// kindLabel names the failure kind for logs and metrics
func kindLabel(err error) string {
	switch {
	case errors.Is(err, errFatalInit):
		return "fatal_init"
	case errors.Is(err, errDegraded):
		return "degraded"
	case errors.Is(err, errTransientIO):
		return "transient_io"
	case errors.Is(err, errStream):
		return "stream"
	default:
		return "other"
	}
}
