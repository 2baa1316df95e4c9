package ogcard

import (
	"errors"
	"fmt"
)

// Failure kinds. Every *Error produced by the pipeline matches exactly one of
// these with errors.Is.
var (
	ErrFetchFailure    = errors.New("fetch failure")
	ErrInvalidInput    = errors.New("invalid input")
	ErrRendering       = errors.New("rendering failure")
	ErrMalformedMarkup = errors.New("malformed markup")
	ErrEngine          = errors.New("engine failure")
)

// Step identifies a pipeline stage.
type Step int

const (
	StepFonts Step = iota + 1
	StepConfig
	StepTemplate
	StepMarkup
	StepEngine
	StepNormalize
)

func (s Step) String() string {
	switch s {
	case StepFonts:
		return "fonts"
	case StepConfig:
		return "config"
	case StepTemplate:
		return "template"
	case StepMarkup:
		return "markup"
	case StepEngine:
		return "engine"
	case StepNormalize:
		return "normalize"
	}
	return "unknown"
}

// Error is a pipeline failure with enough context to identify the failing
// step and input.
type Error struct {
	Kind  error  // one of the Err* sentinels
	Step  Step   // zero when raised outside the generator
	Input string // font URL, template name, ...
	Err   error
}

func (e *Error) Error() string {
	msg := "ogcard: " + e.Kind.Error()
	if e.Step != 0 {
		msg += " in " + e.Step.String()
	}
	if e.Input != "" {
		msg += fmt.Sprintf(" (%s)", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a short label for the failure kind, used in logs and
// metrics.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrFetchFailure):
		return "fetch"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrRendering):
		return "rendering"
	case errors.Is(err, ErrMalformedMarkup):
		return "malformed_markup"
	case errors.Is(err, ErrEngine):
		return "engine"
	case err == nil:
		return ""
	}
	return "unknown"
}

func newError(kind error, input string, err error) *Error {
	return &Error{Kind: kind, Input: input, Err: err}
}
