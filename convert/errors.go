package convert

import (
	"fmt"

	"github.com/signadot/tony-format/go-ydom/dom"
)

// MarshalError represents an error during marshaling
type MarshalError struct {
	Path    string // e.g. "server.ports[1]"
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during unmarshaling
type UnmarshalError struct {
	Path    string
	Message string
	Err     error
}

func (e *UnmarshalError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("unmarshal error: %s", msg)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// TypeError reports a node that cannot be decoded as the expected Go
// type.
type TypeError struct {
	Path     string
	Expected string
	Actual   dom.Type
	Scalar   string // scalar text, when Actual is ScalarType
}

func (e *TypeError) Error() string {
	got := e.Actual.String()
	if e.Actual == dom.ScalarType {
		got = fmt.Sprintf("%s %q", got, e.Scalar)
	}
	if e.Path != "" {
		return fmt.Sprintf("type error at %s: cannot decode %s as %s", e.Path, got, e.Expected)
	}
	return fmt.Sprintf("type error: cannot decode %s as %s", got, e.Expected)
}

func typeError(path, expected string, n dom.Node) *TypeError {
	return &TypeError{Path: path, Expected: expected, Actual: n.Type(), Scalar: n.Scalar()}
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
