package fastjson

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/internal/codectest"
)

func newBackend(t testing.TB) *Backend {
	t.Helper()
	b, err := New()
	require.NoError(t, err)
	return b
}

func TestBackend_Contract(t *testing.T) {
	codectest.Run(t, newBackend(t))
}

func TestBackend_Identity(t *testing.T) {
	b := newBackend(t)
	assert.Equal(t, "rapidjson", b.Name())
	id, ok := codec.ParseID(b.Name())
	require.True(t, ok)
	assert.Equal(t, id.SizeLimit(), b.SizeHint())
}

func BenchmarkDecode(b *testing.B) {
	doc := `{"items":[` + strings.Repeat(`{"id":1,"name":"item","tags":["a","b"],"price":12.5,"ok":true},`, 199) +
		`{"id":1,"name":"item","tags":["a","b"],"price":12.5,"ok":true}]}`
	be := newBackend(b)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := be.Decode(strings.NewReader(doc), codec.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func TestBackend_EncodeNumbers(t *testing.T) {
	b := newBackend(t)
	out, err := b.Encode(map[string]any{"n": json.Number("12345678901234567890"), "i": int64(-3), "f": float32(0.5)}, codec.Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"f":0.5,"i":-3,"n":12345678901234567890}`, string(out))

	_, err = b.Encode(map[string]any{"c": make(chan int)}, codec.Options{})
	assert.Error(t, err)
}
