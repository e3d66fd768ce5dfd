package domain

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates routing failures
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "InvalidInput"
	KindClassifierUnavailable ErrorKind = "ClassifierUnavailable"
	KindConfiguration         ErrorKind = "ConfigurationError"
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	ErrConfiguration         = errors.New("configuration error")
)

// Stage names the pipeline step an error came from
type Stage string

const (
	StageValidate Stage = "validate"
	StageClassify Stage = "classify"
	StageTeam     Stage = "team"
	StageSuggest  Stage = "suggest"
	StageStartup  Stage = "startup"
)

// Error is a typed routing error annotated with the stage that failed.
// Callers should prefer the predicate functions (IsInvalidInput,
// IsClassifierUnavailable, IsConfiguration) or KindOf over asserting on it.
type Error struct {
	Kind  ErrorKind
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinel so errors.Is(err, ErrInvalidInput) works
// without unwrapping to the cause.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrClassifierUnavailable:
		return e.Kind == KindClassifierUnavailable
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	}
	return false
}

// InvalidInput builds an InvalidInput error for the validate stage
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Stage: StageValidate, Err: fmt.Errorf(format, args...)}
}

// ClassifierUnavailable wraps a classifier failure
func ClassifierUnavailable(err error) *Error {
	return &Error{Kind: KindClassifierUnavailable, Stage: StageClassify, Err: err}
}

// Configuration builds a ConfigurationError for the given stage
func Configuration(stage Stage, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Stage: stage, Err: fmt.Errorf(format, args...)}
}

// WithStage returns a copy of err re-annotated with stage when err is an *Error,
// otherwise it wraps err as a ConfigurationError of that stage.
func WithStage(stage Stage, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Stage: stage, Err: e.Err}
	}
	return &Error{Kind: KindConfiguration, Stage: stage, Err: err}
}

// KindOf returns the kind of err, or "" when err is not a routing error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StageOf returns the stage of err, or "" when err is not a routing error
func StageOf(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}

// IsInvalidInput reports whether err is an InvalidInput routing error
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsClassifierUnavailable reports whether err is a ClassifierUnavailable routing error
func IsClassifierUnavailable(err error) bool { return errors.Is(err, ErrClassifierUnavailable) }

// IsConfiguration reports whether err is a ConfigurationError
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }
