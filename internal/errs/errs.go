// Package errs defines the error taxonomy shared by the API clients, the
// vocabulary analyzer, and the CLI. Callers match against these types with
// errors.Is and errors.As; nothing in this package is ever swallowed or
// replaced with a default value.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDivisionUndefined is returned when a ratio metric is requested for an
// empty token sequence. Callers must handle the empty-lyrics case explicitly
// instead of receiving a fabricated zero.
var ErrDivisionUndefined = errors.New("metric undefined for empty token sequence")

// ConfigurationError reports a missing or invalid required setting. Variable
// is the environment variable the user needs to set.
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s is not set", e.Variable)
}

// NotFoundError reports that a lookup by identifier yielded no result.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports a record decoded from an API response that is
// missing required fields.
type ValidationError struct {
	Record string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s record: missing %s", e.Record, strings.Join(e.Fields, ", "))
}

// UpstreamError wraps a failure from an external API call. The core never
// retries these beyond the per-request retry policy of the client that
// produced them.
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HasStatus reports whether err wraps an UpstreamError with the given HTTP
// status code.
func HasStatus(err error, code int) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == code
}
