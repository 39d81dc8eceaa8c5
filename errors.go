package jsonio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Error codes.
const (
	CodeConfiguration      = "configuration_error"
	CodeInvalidSource      = "invalid_source"
	CodeNotFound           = "not_found"
	CodeIsADirectory       = "is_a_directory"
	CodeNetwork            = "network_error"
	CodeBackendUnavailable = "backend_unavailable"
	CodeDecode             = "decode_error"
	CodeUnsupportedOption  = "unsupported_option"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrConfiguration      = &Error{Code: CodeConfiguration}
	ErrInvalidSource      = &Error{Code: CodeInvalidSource}
	ErrNotFound           = &Error{Code: CodeNotFound}
	ErrIsADirectory       = &Error{Code: CodeIsADirectory}
	ErrNetwork            = &Error{Code: CodeNetwork}
	ErrBackendUnavailable = &Error{Code: CodeBackendUnavailable}
	ErrDecode             = &Error{Code: CodeDecode}
	ErrUnsupportedOption  = &Error{Code: CodeUnsupportedOption}
)

// Error is the single error type of the read pipeline.
type Error struct {
	Code    string
	Op      string // classify, open, resolve, read
	Source  string // offending path, URL or backend name when known
	Message string
	Err     error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString("jsonio: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Code)
	if e.Source != "" {
		fmt.Fprintf(b, " %q", e.Source)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Timeout reports whether the underlying cause was a deadline or a network
// timeout.
func (e *Error) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

func newError(code, op, source, msg string, err error) *Error {
	return &Error{Code: code, Op: op, Source: source, Message: msg, Err: err}
}

func configError(format string, args ...any) *Error {
	return &Error{Code: CodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

// ParsingFailure wraps every failure raised while classifying, opening or
// decoding a source. The original cause stays reachable through Unwrap.
type ParsingFailure struct {
	Kind SourceKind // kind of the source when classification succeeded
	Err  error
}

func (p *ParsingFailure) Error() string {
	return "jsonio: failed to parse JSON: " + p.Err.Error()
}

func (p *ParsingFailure) Unwrap() error { return p.Err }

// AsError extracts the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTimeout reports whether err is a network failure caused by a timeout.
func IsTimeout(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == CodeNetwork && e.Timeout()
}
