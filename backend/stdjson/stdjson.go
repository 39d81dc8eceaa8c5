// Package stdjson is the baseline backend built on encoding/json. It is always
// available and is the substitution target when another backend cannot be
// constructed.
package stdjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/internal/strict"
)

// ErrTrailingData is returned when input continues after the top-level value.
var ErrTrailingData = errors.New("stdjson: unexpected data after top-level value")

// Backend implements codec.PluggableCodec.
type Backend struct{}

// New returns the baseline backend.
func New() *Backend { return &Backend{} }

// Name returns the registry name of the backend.
func (*Backend) Name() string { return codec.JSON.String() }

// Decode parses one JSON document from r into a value tree.
func (b *Backend) Decode(r io.Reader, opts codec.Options) (any, error) {
	return b.DecodeWith(r, nil, opts)
}

// DecodeWith decodes using a decoder built by newDecoder, or a default
// *json.Decoder when newDecoder is nil.
func (*Backend) DecodeWith(r io.Reader, newDecoder codec.DecoderFactory, opts codec.Options) (any, error) {
	if opts.Strict() {
		data, err := strict.Prepare(r, opts)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}

	var dec codec.Decoder
	if newDecoder != nil {
		dec = newDecoder(r)
	} else {
		dec = json.NewDecoder(r)
	}
	jd, isStd := dec.(*json.Decoder)
	if isStd && opts.UseNumber {
		jd.UseNumber()
	}

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if isStd {
		if _, err := jd.Token(); err != io.EOF {
			return nil, ErrTrailingData
		}
	}
	return v, nil
}

// Encode serializes v with encoding/json.
func (*Backend) Encode(v any, opts codec.Options) ([]byte, error) {
	if opts.Indent != "" {
		return json.MarshalIndent(v, "", opts.Indent)
	}
	return json.Marshal(v)
}
