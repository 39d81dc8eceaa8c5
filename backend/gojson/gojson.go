// Package gojson provides the "simplejson" backend on top of goccy/go-json, a
// drop-in replacement for encoding/json.
package gojson

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/internal/strict"
)

var errTrailingData = errors.New("gojson: unexpected data after top-level value")

// Backend implements codec.Codec.
type Backend struct{}

// New returns the go-json backend.
func New() (*Backend, error) { return &Backend{}, nil }

// Name returns the registry name of the backend.
func (*Backend) Name() string { return codec.SimpleJSON.String() }

// SizeHint is the advisory payload limit in bytes.
func (*Backend) SizeHint() int64 { return codec.SimpleJSON.SizeLimit() }

// Decode parses one JSON document from r into a value tree.
func (*Backend) Decode(r io.Reader, opts codec.Options) (any, error) {
	data, err := strict.Prepare(r, opts)
	if err != nil {
		return nil, err
	}
	dec := j.NewDecoder(bytes.NewReader(data))
	if opts.UseNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// Encode serializes v with go-json.
func (*Backend) Encode(v any, opts codec.Options) ([]byte, error) {
	if opts.Indent != "" {
		return j.MarshalIndent(v, "", opts.Indent)
	}
	return j.Marshal(v)
}
