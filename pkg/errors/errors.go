package errors

import (
	"fmt"
)

// ParseError represents a manifest parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures manifest or input validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RenderError reports a failed render of a custom element.
type RenderError struct {
	Tag string
	Err error
}

// NewRenderError constructs a RenderError for the given element tag.
func NewRenderError(tag string, err error) error {
	return &RenderError{Tag: tag, Err: err}
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Tag != "" {
		return fmt.Sprintf("render error on <%s>: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("render error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ScaffoldError indicates a failed project scaffolding step.
type ScaffoldError struct {
	Step    string
	Message string
	Err     error
}

// NewScaffoldError constructs a ScaffoldError for the named step.
func NewScaffoldError(step, message string, err error) error {
	return &ScaffoldError{Step: step, Message: message, Err: err}
}

func (e *ScaffoldError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Step != "" {
		return fmt.Sprintf("scaffold error [%s]: %s", e.Step, msg)
	}
	return fmt.Sprintf("scaffold error: %s", msg)
}

// Unwrap exposes the underlying error.
func (e *ScaffoldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
