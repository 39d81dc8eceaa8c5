// Package codec defines the capability surface shared by every JSON backend:
// a Codec decodes a text stream into a generic value tree and encodes such a
// tree back to bytes. Backends that let callers swap the low-level decoder
// additionally implement PluggableCodec.
package codec

import (
	"errors"
	"io"
)

// ErrUnsupported is returned by backends that cannot honor a requested option.
var ErrUnsupported = errors.New("codec: unsupported option")

// Options tune a single Decode or Encode call. The zero value selects each
// backend's default behavior.
type Options struct {
	// UseNumber decodes numbers as json.Number instead of float64.
	UseNumber bool
	// DisallowDuplicateKeys rejects objects that repeat a key.
	DisallowDuplicateKeys bool
	// MaxDepth bounds container nesting; 0 means unlimited.
	MaxDepth int
	// Indent, when non-empty, pretty-prints encoded output.
	Indent string
}

// Strict reports whether the options require a pre-decode token scan.
func (o Options) Strict() bool { return o.DisallowDuplicateKeys || o.MaxDepth > 0 }

// Codec is the minimal backend capability.
type Codec interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string
	// Decode consumes r to completion and returns the decoded value tree
	// (map[string]any, []any, string, float64 or json.Number, bool, nil).
	Decode(r io.Reader, opts Options) (any, error)
	// Encode serializes v.
	Encode(v any, opts Options) ([]byte, error)
}

// Decoder is the low-level streaming decoder contract satisfied by
// *encoding/json.Decoder and by drop-in replacements.
type Decoder interface {
	Decode(v any) error
}

// DecoderFactory builds a Decoder over r. It plays the role of a pluggable
// decoder class.
type DecoderFactory func(r io.Reader) Decoder

// PluggableCodec is implemented by backends that accept a caller-supplied
// decoder.
type PluggableCodec interface {
	Codec
	DecodeWith(r io.Reader, newDecoder DecoderFactory, opts Options) (any, error)
}

// SizeHinter is implemented by codecs that advertise their own advisory
// payload size limit in bytes.
type SizeHinter interface {
	SizeHint() int64
}
