// Package errors provides the typed error taxonomy for the forust core.
//
// Every failure in this library is a programmer or data error that must be
// fixed upstream; nothing here is retried or masked. Errors are built on
// cockroachdb/errors so they carry stack traces, and the structured types
// implement zerolog's ObjectMarshaler so callers can emit them as
// structured log events.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NoVarianceError indicates that a column's deduplicated cut table has fewer
// than three entries: the column has no usable variance and cannot produce a
// meaningful split. Binning is all-or-nothing, so this aborts the whole
// matrix.
type NoVarianceError struct {
	Column int
}

func (e *NoVarianceError) Error() string {
	return fmt.Sprintf("forust: column %d has no usable variance; at least one real cut boundary is required", e.Column)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NoVarianceError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("column", e.Column).
		Str("type", "NoVarianceError")
}

// NewNoVarianceError creates a NoVarianceError with a stack trace attached.
func NewNoVarianceError(column int) error {
	err := &NoVarianceError{Column: column}
	return errors.WithStack(err)
}

// ParseStringError indicates an unrecognized configuration string for an
// enumerated option. It carries the offending value, the enumeration's name
// and the accepted values so the caller can report an actionable message.
type ParseStringError struct {
	Value    string
	Target   string
	Accepted []string
}

func (e *ParseStringError) Error() string {
	return fmt.Sprintf("forust: cannot parse %q as %s; accepted values are: %s",
		e.Value, e.Target, strings.Join(e.Accepted, ", "))
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ParseStringError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("value", e.Value).
		Str("target", e.Target).
		Strs("accepted", e.Accepted).
		Str("type", "ParseStringError")
}

// NewParseStringError creates a ParseStringError with a stack trace attached.
func NewParseStringError(value, target string, accepted []string) error {
	err := &ParseStringError{Value: value, Target: target, Accepted: accepted}
	return errors.WithStack(err)
}

// ValidationError indicates that an input parameter failed validation at
// construction time, before any computation ran.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("forust: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DimensionError indicates that an input buffer's dimensions disagree with
// what the operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("forust: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches the target error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Shared sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no data.
	ErrEmptyData = New("empty data")

	// ErrNoPercentiles is returned when a percentile computation is asked
	// for an empty set of target fractions.
	ErrNoPercentiles = New("no percentiles provided")
)
