// Package sonic provides the "orjson" backend on top of bytedance/sonic, a
// JIT/SIMD accelerated decoder.
package sonic

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/internal/strict"
)

// Backend implements codec.Codec.
type Backend struct {
	std sonic.API
	num sonic.API
}

// New returns the sonic backend configured for encoding/json compatibility.
func New() (*Backend, error) {
	num := sonic.Config{
		EscapeHTML:       true,
		SortMapKeys:      true,
		CompactMarshaler: true,
		CopyString:       true,
		ValidateString:   true,
		UseNumber:        true,
	}.Froze()
	return &Backend{std: sonic.ConfigStd, num: num}, nil
}

// Name returns the registry name of the backend.
func (*Backend) Name() string { return codec.OrJSON.String() }

// SizeHint is the advisory payload limit in bytes.
func (*Backend) SizeHint() int64 { return codec.OrJSON.SizeLimit() }

// Decode parses one JSON document from r into a value tree.
func (b *Backend) Decode(r io.Reader, opts codec.Options) (any, error) {
	data, err := strict.Prepare(r, opts)
	if err != nil {
		return nil, err
	}
	api := b.std
	if opts.UseNumber {
		api = b.num
	}
	var v any
	if err := api.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode serializes v with sonic.
func (b *Backend) Encode(v any, opts codec.Options) ([]byte, error) {
	if opts.Indent != "" {
		return b.std.MarshalIndent(v, "", opts.Indent)
	}
	return b.std.Marshal(v)
}
