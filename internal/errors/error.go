package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/vango-dev/miniframe/pkg/render"
	"github.com/vango-dev/miniframe/pkg/store"
	"github.com/vango-dev/miniframe/pkg/vdom"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryRender   Category = "render"
	CategoryProtocol Category = "protocol"
	CategoryScenario Category = "scenario"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a position in a source file, such as a scenario script.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a coded error with optional location, hint and wrapped cause.
type Error struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source position the error refers to.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location and reads the surrounding lines.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error. Errors that already are an
// *Error are returned unchanged. An empty code selects the code of the
// framework error found in err's chain, if any.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	if code == "" {
		code = Classify(err)
	}
	return New(code).Wrap(err)
}

// Classify returns the registry code for the framework error in err's chain.
// The listener failure is checked last so that its cause wins.
func Classify(err error) string {
	switch {
	case stderrors.Is(err, vdom.ErrInvalidSpec):
		return CodeInvalidSpec
	case stderrors.Is(err, render.ErrMountNotFound):
		return CodeMountNotFound
	case stderrors.Is(err, store.ErrMergeFailure):
		return CodeMergeFailure
	case stderrors.Is(err, store.ErrListenerFailure):
		return CodeListenerFailure
	default:
		return CodeInternal
	}
}
