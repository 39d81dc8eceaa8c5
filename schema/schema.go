// Package schema adapts JSON Schema documents into jsonio validators.
package schema

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reoring/jsonio"
)

// DefaultID names schemas compiled without an explicit id.
const DefaultID = "schema.json"

// Schema is a compiled JSON Schema. It is safe for concurrent use.
type Schema struct {
	id string
	s  *jsonschema.Schema
}

// Compile compiles doc under id. Formats and content keywords are asserted.
func Compile(id string, doc []byte) (*Schema, error) {
	return FromReader(id, bytes.NewReader(doc))
}

// FromReader compiles the schema document read from r.
func FromReader(id string, r io.Reader) (*Schema, error) {
	if id == "" {
		id = DefaultID
	}
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}
	c := newCompiler()
	if err := c.AddResource(id, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compile(c, id)
}

// FromFile compiles the schema stored at path; relative $refs resolve
// against it.
func FromFile(path string) (*Schema, error) {
	return compile(newCompiler(), path)
}

func newCompiler() *jsonschema.Compiler {
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	c.AssertContent()
	return c
}

func compile(c *jsonschema.Compiler, id string) (*Schema, error) {
	s, err := c.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{id: id, s: s}, nil
}

// Validate checks v. Failures are reported as *Error.
func (s *Schema) Validate(v any) error {
	err := s.s.Validate(v)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &Error{Schema: s.id, Violations: []Violation{{Message: err.Error()}}}
	}
	out := &Error{Schema: s.id, cause: verr}
	collect(verr, &out.Violations)
	return out
}

// Validator returns s as a jsonio.Validator.
func (s *Schema) Validator() jsonio.Validator { return s.Validate }

// Violation is a single failed keyword.
type Violation struct {
	Pointer string // JSON Pointer into the instance
	Keyword string // JSON Pointer into the schema
	Message string
}

// Error lists every leaf violation of one validation.
type Error struct {
	Schema     string
	Violations []Violation
	cause      *jsonschema.ValidationError
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return "schema: validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		p := v.Pointer
		if p == "" {
			p = "/"
		}
		parts = append(parts, p+": "+v.Message)
	}
	return "schema: " + strings.Join(parts, "; ")
}

// Unwrap exposes the library's ValidationError.
func (e *Error) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

var printer = message.NewPrinter(language.English)

func collect(verr *jsonschema.ValidationError, out *[]Violation) {
	if len(verr.Causes) == 0 {
		*out = append(*out, Violation{
			Pointer: pointer(verr.InstanceLocation),
			Keyword: pointer(verr.ErrorKind.KeywordPath()),
			Message: verr.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, c := range verr.Causes {
		collect(c, out)
	}
}

func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range loc {
		b.WriteByte('/')
		tok = strings.ReplaceAll(tok, "~", "~0")
		b.WriteString(strings.ReplaceAll(tok, "/", "~1"))
	}
	return b.String()
}
