package jsonio

import (
	"io"
	"path/filepath"
)

// SourceKind enumerates the shapes a source can be classified into.
type SourceKind int

const (
	KindURL      SourceKind = iota // http(s) URL string
	KindPath                       // filesystem path
	KindJSONText                   // raw JSON text
	KindBytes                      // []byte or json.RawMessage
	KindStream                     // io.Reader

	// KindUnknown marks a failure before classification completed.
	KindUnknown SourceKind = -1
)

func (k SourceKind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindPath:
		return "path"
	case KindJSONText:
		return "json_text"
	case KindBytes:
		return "bytes"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Path marks a value as filesystem-path-like. Plain strings are also accepted
// as paths when the heuristics say so.
type Path string

func newPath(s string) Path { return Path(filepath.Clean(s)) }

func (p Path) String() string { return string(p) }

// Classified pairs a SourceKind with its normalized payload. Exactly one
// payload field is meaningful, selected by Kind.
type Classified struct {
	Kind   SourceKind
	Path   Path      // KindPath
	URL    string    // KindURL
	Text   string    // KindJSONText
	Bytes  []byte    // KindBytes, aliases the caller's slice
	Stream io.Reader // KindStream, aliases the caller's reader
}

// Value returns the payload selected by Kind.
func (c Classified) Value() any {
	switch c.Kind {
	case KindURL:
		return c.URL
	case KindPath:
		return c.Path
	case KindJSONText:
		return c.Text
	case KindBytes:
		return c.Bytes
	case KindStream:
		return c.Stream
	}
	return nil
}

// Describe renders the payload for diagnostics without exposing raw JSON.
func (c Classified) Describe() string {
	switch c.Kind {
	case KindURL:
		return c.URL
	case KindPath:
		return string(c.Path)
	}
	return ""
}
