// Package jsoniter provides the "ujson" backend on top of json-iterator.
package jsoniter

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/internal/strict"
)

// Backend implements codec.Codec.
type Backend struct {
	std jsoniter.API
	num jsoniter.API
}

// New returns a json-iterator backend that behaves like encoding/json.
func New() (*Backend, error) {
	num := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()
	return &Backend{std: jsoniter.ConfigCompatibleWithStandardLibrary, num: num}, nil
}

// Name returns the registry name of the backend.
func (*Backend) Name() string { return codec.UJSON.String() }

// SizeHint is the advisory payload limit in bytes.
func (*Backend) SizeHint() int64 { return codec.UJSON.SizeLimit() }

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

// Encode serializes v with json-iterator.
func (b *Backend) Encode(v any, opts codec.Options) ([]byte, error) {
	if opts.Indent != "" {
		return b.std.MarshalIndent(v, "", opts.Indent)
	}
	return b.std.Marshal(v)
}
