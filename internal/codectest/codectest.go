// Package codectest holds the behavior every backend must share.
package codectest

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/internal/strict"
)

// Run checks c against the common decode/encode contract.
func Run(t *testing.T, c codec.Codec) {
	t.Helper()

	t.Run("decode value tree", func(t *testing.T) {
		v, err := c.Decode(strings.NewReader(`{"s":"x","n":1.5,"b":true,"z":null,"a":[1,"two",{}]}`), codec.Options{})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"s": "x",
			"n": 1.5,
			"b": true,
			"z": nil,
			"a": []any{float64(1), "two", map[string]any{}},
		}, v)
	})

	t.Run("scalars at top level", func(t *testing.T) {
		for in, want := range map[string]any{`"s"`: "s", `12`: float64(12), `false`: false, `null`: nil, ` [ ] `: []any{}} {
			v, err := c.Decode(strings.NewReader(in), codec.Options{})
			require.NoError(t, err, in)
			assert.Equal(t, want, v, in)
		}
	})

	t.Run("non-ascii round trip", func(t *testing.T) {
		in := map[string]any{"名前": "José ☃", "emoji": "😀"}
		out, err := c.Encode(in, codec.Options{})
		require.NoError(t, err)
		v, err := c.Decode(strings.NewReader(string(out)), codec.Options{})
		require.NoError(t, err)
		assert.Equal(t, in, v)
	})

	t.Run("use number", func(t *testing.T) {
		v, err := c.Decode(strings.NewReader(`{"big":12345678901234567890,"f":0.1}`), codec.Options{UseNumber: true})
		require.NoError(t, err)
		m := v.(map[string]any)
		assert.Equal(t, json.Number("12345678901234567890"), m["big"])
		assert.Equal(t, json.Number("0.1"), m["f"])
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, in := range []string{`{"a":`, `{"a" 1}`, `[1,]`, `[1]]`, `{"a":1}}`, ``, `  `} {
			_, err := c.Decode(strings.NewReader(in), codec.Options{})
			assert.Error(t, err, "%q", in)
		}
	})

	t.Run("duplicate keys", func(t *testing.T) {
		_, err := c.Decode(strings.NewReader(`{"a":1,"a":2}`), codec.Options{DisallowDuplicateKeys: true})
		var v *strict.Violation
		require.True(t, errors.As(err, &v), "got %v", err)
		assert.Equal(t, strict.CodeDuplicateKey, v.Code)
	})

	t.Run("max depth", func(t *testing.T) {
		_, err := c.Decode(strings.NewReader(`[[[1]]]`), codec.Options{MaxDepth: 2})
		var v *strict.Violation
		require.True(t, errors.As(err, &v), "got %v", err)
		assert.Equal(t, strict.CodeMaxDepth, v.Code)

		_, err = c.Decode(strings.NewReader(`[[1]]`), codec.Options{MaxDepth: 2})
		assert.NoError(t, err)
	})

	t.Run("encode indent", func(t *testing.T) {
		out, err := c.Encode(map[string]any{"b": []any{1}, "a": "x"}, codec.Options{Indent: "  "})
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":"x","b":[1]}`, string(out))
		assert.Contains(t, string(out), "\n  ")
	})
}

// Nested returns depth levels of nested arrays around 0.
func Nested(depth int) string {
	return strings.Repeat("[", depth) + "0" + strings.Repeat("]", depth)
}
