package specgen

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitInputError = 2
)

type ErrorKind int

const (
	// KindParse: a spec or config file could not be read or decoded.
	KindParse ErrorKind = iota
	// KindSchema: a decoded spec file does not have the expected shape.
	KindSchema
	// KindConfig: the generator configuration is invalid.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindSchema:
		return "schema error"
	case KindConfig:
		return "config error"
	default:
		return "error"
	}
}

// Error describes a failure tied to an input file and, for schema errors,
// to one test entry within it.
type Error struct {
	Kind    ErrorKind
	File    string
	Ordinal int // 1-based test entry, 0 when not entry specific
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.File != "" {
		msg += ": " + e.File
	}
	if e.Ordinal > 0 {
		msg += fmt.Sprintf(": test #%d", e.Ordinal)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) ExitCode() int {
	return ExitInputError
}

func ParseError(file string, message string, cause error) *Error {
	return &Error{Kind: KindParse, File: file, Message: message, Cause: cause}
}

func SchemaErrorf(file string, ordinal int, format string, args ...any) *Error {
	return &Error{Kind: KindSchema, File: file, Ordinal: ordinal, Message: fmt.Sprintf(format, args...)}
}

// MissingField reports a required test entry field that is absent.
func MissingField(file string, ordinal int, field string) *Error {
	return &Error{
		Kind:    KindSchema,
		File:    file,
		Ordinal: ordinal,
		Field:   field,
		Message: fmt.Sprintf("missing required field %q", field),
	}
}

func ConfigErrorf(file string, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, File: file, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a specgen error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var specErr *Error
	return errors.As(err, &specErr) && specErr.Kind == kind
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitFailure
}
