package tracer

import "errors"

var (
	ErrNoTracers        = errors.New("tracer: no tracers attached")
	ErrNoTarget         = errors.New("tracer: no intersection target defined")
	ErrInterrupted      = errors.New("tracer: interrupted while casting")
	ErrTracerClosed     = errors.New("tracer: tracer is closed")
	ErrUnknownScheduler = errors.New("tracer: unknown block scheduler")
)
