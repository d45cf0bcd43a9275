package fluentmasker

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrPropertyNotFound indicates a property name was never compiled for the type.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrPropertyReadOnly indicates a write to a property compiled without a setter.
	ErrPropertyReadOnly = errors.New("property is read-only")

	// ErrTypeMismatch indicates a value or rule does not match the property type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedType indicates the target type is not a struct.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidSelector indicates a selector did not resolve to a property.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrInvalidArgument indicates a rule was constructed with an out-of-range parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfig indicates a declarative configuration could not be applied.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrPatternTimeout indicates a pattern-matching rule exceeded its match timeout.
	ErrPatternTimeout = errors.New("pattern match timeout")

	// ErrRule indicates a rule failed while transforming a value.
	ErrRule = errors.New("rule failed")

	// ErrMarshal indicates the codec failed to marshal the masked structure.
	ErrMarshal = errors.New("marshal failed")

	// ErrNilInstance indicates Mask was called with a nil instance.
	ErrNilInstance = errors.New("nil instance")

	// ErrInvalidKey indicates an encryption key has invalid size or format.
	ErrInvalidKey = errors.New("invalid key")
)

// ConfigError represents a rule or masker configuration error.
// It wraps a sentinel error with the rule and parameter that were rejected.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrInvalidArgument, etc.)
	Rule  string // Rule or component being configured
	Param string // Offending parameter, if any
	Cause error  // Optional underlying error
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	switch {
	case e.Rule != "" && e.Param != "":
		msg = fmt.Sprintf("%s: %s (param %s)", msg, e.Rule, e.Param)
	case e.Rule != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Rule)
	case e.Param != "":
		msg = fmt.Sprintf("%s (param %s)", msg, e.Param)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// TransformError represents a failure while running a property's rule chain.
type TransformError struct {
	Err      error  // Underlying sentinel error (ErrRule, ErrPatternTimeout)
	Property string // Property whose chain failed
	Step     int    // Zero-based index of the failing rule in the chain
	Cause    error  // Original error from the rule
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mask property %s (rule %d): %v", e.Property, e.Step, e.Cause)
	}
	return fmt.Sprintf("mask property %s (rule %d)", e.Property, e.Step)
}

func (e *TransformError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CodecError represents a marshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// invalidArg creates a ConfigError for a rejected rule parameter.
func invalidArg(rule, param, format string, args ...any) error {
	return &ConfigError{
		Err:   ErrInvalidArgument,
		Rule:  rule,
		Param: param,
		Cause: fmt.Errorf(format, args...),
	}
}

// newTransformError creates a TransformError for chain failures.
func newTransformError(property string, step int, cause error) error {
	sentinel := ErrRule
	if errors.Is(cause, ErrPatternTimeout) {
		sentinel = ErrPatternTimeout
	}
	return &TransformError{
		Err:      sentinel,
		Property: property,
		Step:     step,
		Cause:    cause,
	}
}

// newCodecError creates a CodecError for marshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
