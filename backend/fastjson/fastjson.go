// Package fastjson provides the "rapidjson" backend on top of
// valyala/fastjson. Parsing goes through pooled parsers; encoding builds an
// arena value tree. fastjson rejects documents nested deeper than 300 levels.
package fastjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/valyala/fastjson"

	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/internal/strict"
)

// Backend implements codec.Codec.
type Backend struct {
	parsers fastjson.ParserPool
	arenas  fastjson.ArenaPool
}

// New returns the fastjson backend.
func New() (*Backend, error) { return &Backend{}, nil }

// Name returns the registry name of the backend.
func (*Backend) Name() string { return codec.RapidJSON.String() }

// SizeHint is the advisory payload limit in bytes.
func (*Backend) SizeHint() int64 { return codec.RapidJSON.SizeLimit() }

// Decode parses one JSON document from r into a value tree.
func (b *Backend) Decode(r io.Reader, opts codec.Options) (any, error) {
	data, err := strict.Prepare(r, opts)
	if err != nil {
		return nil, err
	}
	p := b.parsers.Get()
	defer b.parsers.Put(p)
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return toAny(v, opts.UseNumber)
}

func toAny(v *fastjson.Value, useNumber bool) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case fastjson.TypeNumber:
		if useNumber {
			return json.Number(v.String()), nil
		}
		return v.Float64()
	case fastjson.TypeArray:
		items, err := v.Array()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			x, err := toAny(it, useNumber)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, o.Len())
		var verr error
		o.Visit(func(k []byte, item *fastjson.Value) {
			if verr != nil {
				return
			}
			x, err := toAny(item, useNumber)
			if err != nil {
				verr = err
				return
			}
			out[string(k)] = x
		})
		return out, verr
	}
	return nil, fmt.Errorf("fastjson: unexpected value type %s", v.Type())
}

// Encode serializes v with fastjson.
func (b *Backend) Encode(v any, opts codec.Options) ([]byte, error) {
	a := b.arenas.Get()
	defer b.arenas.Put(a)
	fv, err := fromAny(a, v)
	if err != nil {
		return nil, err
	}
	out := fv.MarshalTo(nil)
	if opts.Indent == "" {
		return out, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", opts.Indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fromAny(a *fastjson.Arena, v any) (*fastjson.Value, error) {
	switch x := v.(type) {
	case nil:
		return a.NewNull(), nil
	case bool:
		if x {
			return a.NewTrue(), nil
		}
		return a.NewFalse(), nil
	case string:
		return a.NewString(x), nil
	case float64:
		return a.NewNumberFloat64(x), nil
	case float32:
		return a.NewNumberFloat64(float64(x)), nil
	case int:
		return a.NewNumberInt(x), nil
	case int64:
		return a.NewNumberString(fmt.Sprint(x)), nil
	case json.Number:
		return a.NewNumberString(string(x)), nil
	case []any:
		arr := a.NewArray()
		for i, it := range x {
			iv, err := fromAny(a, it)
			if err != nil {
				return nil, err
			}
			arr.SetArrayItem(i, iv)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := a.NewObject()
		for _, k := range keys {
			iv, err := fromAny(a, x[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, iv)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("fastjson: cannot encode %T", v)
}
