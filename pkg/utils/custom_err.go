package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrOracleUnavailable = errors.New("oracle unavailable")
	ErrOracleTransport   = errors.New("oracle transport error")
	ErrOracleRefused     = errors.New("oracle refused request")
	ErrMalformedPayload  = errors.New("malformed payload")
)

// Pipeline stages, used as the Stage of a PipelineError and as a log field.
const (
	StageValidate  = "validate"
	StageDirective = "directive"
	StageOracle    = "oracle"
	StageNormalize = "normalize"
)

// PipelineError records which stage failed, the failure kind (one of the
// sentinels above) and the underlying cause.
type PipelineError struct {
	Stage string
	Kind  error
	Cause error
}

// Error names the kind once: a cause that already wraps it is printed alone.
func (e *PipelineError) Error() string {
	switch {
	case e.Cause == nil:
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	case errors.Is(e.Cause, e.Kind):
		return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
	default:
		return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Cause)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *PipelineError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NewPipelineError(stage string, kind, cause error) *PipelineError {
	return &PipelineError{Stage: stage, Kind: kind, Cause: cause}
}

// ErrorKind returns the sentinel matching err, or nil for unknown errors.
func ErrorKind(err error) error {
	for _, kind := range []error{
		ErrInvalidInput,
		ErrOracleUnavailable,
		ErrOracleTransport,
		ErrOracleRefused,
		ErrMalformedPayload,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// ErrorKindLabel is a short label for metrics and the usage ledger.
func ErrorKindLabel(err error) string {
	switch ErrorKind(err) {
	case nil:
		if err == nil {
			return ""
		}
		return "internal"
	case ErrInvalidInput:
		return "invalid_input"
	case ErrOracleUnavailable:
		return "oracle_unavailable"
	case ErrOracleTransport:
		return "oracle_transport"
	case ErrOracleRefused:
		return "oracle_refused"
	default:
		return "malformed_payload"
	}
}

// IsRetryable reports whether a fresh invocation may succeed where this one failed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrOracleTransport) || errors.Is(err, ErrMalformedPayload)
}
