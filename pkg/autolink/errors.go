package autolink

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrTreeUnavailable is returned when there is no document tree to walk:
// a nil document, a part without a root, or a package without its main
// document part.
var ErrTreeUnavailable = errors.New("unable to load document tree")

// DocumentError reports a failure while reading, parsing or writing a
// package or one of its parts. Path names the file or the part.
type DocumentError struct {
	Op   string
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	var sb strings.Builder
	sb.WriteString("document: ")
	sb.WriteString(e.Op)
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError wraps err with the operation and path it happened in.
func NewDocumentError(op, path string, err error) error {
	return &DocumentError{Op: op, Path: path, Err: err}
}

// RunError records a run that could not be linkified. The run is left as
// it was and the pass carries on.
type RunError struct {
	Part  string
	Text  string
	Cause error
}

func (e *RunError) Error() string {
	text := e.Text
	if r := []rune(text); len(r) > 40 {
		text = string(r[:37]) + "..."
	}
	if e.Part != "" {
		return fmt.Sprintf("run %q in %s: %v", text, e.Part, e.Cause)
	}
	return fmt.Sprintf("run %q: %v", text, e.Cause)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

// ConfigError reports an invalid configuration value
type ConfigError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// MultiError accumulates the run failures of a pass. The zero value is
// ready to use.
type MultiError struct {
	errs []error
}

// NewMultiError returns an empty collector.
func NewMultiError() *MultiError {
	return &MultiError{}
}

// Add records err. Nil errors are dropped.
func (m *MultiError) Add(err error) {
	if err == nil {
		return
	}
	m.errs = append(m.errs, err)
}

// Len reports how many errors were recorded.
func (m *MultiError) Len() int {
	return len(m.errs)
}

// Errors returns the collected errors.
func (m *MultiError) Errors() []error {
	return m.errs
}

// Unwrap lets errors.Is and errors.As look at every collected error.
func (m *MultiError) Unwrap() []error {
	return m.errs
}

// Err returns nil when nothing was recorded, the error itself when there
// is exactly one, and m otherwise.
func (m *MultiError) Err() error {
	switch len(m.errs) {
	case 0:
		return nil
	case 1:
		return m.errs[0]
	default:
		return m
	}
}

func (m *MultiError) Error() string {
	switch len(m.errs) {
	case 0:
		return "no errors"
	case 1:
		return m.errs[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors occurred:", len(m.errs))
	for i, err := range m.errs {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// ContextError annotates an error with the operation and the key/value
// pairs that describe where it happened.
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	if len(e.Context) == 0 {
		return e.Operation + ": " + e.Cause.Error()
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, e.Context[k])
	}
	return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(pairs, ", "), e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps err in a ContextError. It returns nil for a nil err.
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{Operation: operation, Context: context, Cause: err}
}

// RecoverError turns a value returned by recover into an error. Error
// values stay reachable through errors.Is.
func RecoverError(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic recovered: %w", err)
	}
	return fmt.Errorf("panic recovered: %v", r)
}

// IsDocumentError reports whether err wraps a *DocumentError.
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}

// IsRunError reports whether err wraps a *RunError.
func IsRunError(err error) bool {
	var target *RunError
	return errors.As(err, &target)
}

// IsConfigError reports whether err wraps a *ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}
