package jsonio_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonio"
	"github.com/reoring/jsonio/backend/stdjson"
	"github.com/reoring/jsonio/codec"
)

// fakeCodec returns a fixed value and records what it was asked to decode.
type fakeCodec struct {
	name  string
	value any
}

func (f *fakeCodec) Name() string { return f.name }

func (f *fakeCodec) Decode(r io.Reader, _ codec.Options) (any, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return f.value, nil
}

func (f *fakeCodec) Encode(any, codec.Options) ([]byte, error) { return []byte(`"fake"`), nil }

type Unnamed struct{ fakeCodec }

func TestRegistry_Baseline(t *testing.T) {
	reg := jsonio.NewRegistry()
	assert.True(t, reg.Registered(codec.JSON))
	assert.Equal(t, []codec.ID{codec.JSON}, reg.IDs())

	c, err := reg.Load(codec.JSON)
	require.NoError(t, err)
	assert.IsType(t, &stdjson.Backend{}, c)

	reg.Unregister(codec.JSON)
	assert.True(t, reg.Registered(codec.JSON))
	assert.Equal(t, "json", reg.Baseline().Name())
}

func TestRegistry_LazyAndCached(t *testing.T) {
	reg := jsonio.NewRegistry()
	var calls atomic.Int32
	require.NoError(t, reg.Register(codec.UJSON, func() (codec.Codec, error) {
		calls.Add(1)
		return &fakeCodec{name: "ujson"}, nil
	}))
	assert.Zero(t, calls.Load())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Load(codec.UJSON)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())

	require.NoError(t, reg.Register(codec.UJSON, func() (codec.Codec, error) { return &fakeCodec{name: "v2"}, nil }))
	c, err := reg.Load(codec.UJSON)
	require.NoError(t, err)
	assert.Equal(t, "v2", c.Name())
}

func TestRegistry_Errors(t *testing.T) {
	reg := jsonio.NewRegistry()

	assert.True(t, errors.Is(reg.Register(codec.ID(99), func() (codec.Codec, error) { return nil, nil }), jsonio.ErrConfiguration))
	assert.True(t, errors.Is(reg.Register(codec.OrJSON, nil), jsonio.ErrConfiguration))

	_, err := reg.Load(codec.OrJSON)
	assert.True(t, errors.Is(err, jsonio.ErrBackendUnavailable))

	boom := errors.New("no simd")
	require.NoError(t, reg.Register(codec.OrJSON, func() (codec.Codec, error) { return nil, boom }))
	_, err = reg.Load(codec.OrJSON)
	assert.True(t, errors.Is(err, jsonio.ErrBackendUnavailable))
	assert.ErrorIs(t, err, boom)

	reg.Unregister(codec.OrJSON)
	assert.False(t, reg.Registered(codec.OrJSON))
}

func TestResolver_ExplicitInstance(t *testing.T) {
	fc := &fakeCodec{name: "mine"}
	res, err := jsonio.Resolver{}.Resolve(context.Background(), jsonio.ReaderConfig{Backend: fc})
	require.NoError(t, err)
	assert.Same(t, fc, res.Codec)
	assert.Equal(t, "mine", res.Name)
	assert.Equal(t, codec.Custom, res.ID)
	assert.Equal(t, codec.Custom.SizeLimit(), res.SizeHint())

	res, err = jsonio.Resolver{}.Resolve(context.Background(), jsonio.ReaderConfig{Backend: &Unnamed{}})
	require.NoError(t, err)
	assert.Equal(t, "unnamed", res.Name)

	// Name and instance: instance wins, name labels it.
	res, err = jsonio.Resolver{}.Resolve(context.Background(), jsonio.ReaderConfig{Backend: fc, BackendName: "ujson"})
	require.NoError(t, err)
	assert.Same(t, fc, res.Codec)
	assert.Equal(t, codec.UJSON, res.ID)
}

func TestResolver_ConfigErrors(t *testing.T) {
	_, err := jsonio.Resolver{}.Resolve(context.Background(), jsonio.ReaderConfig{})
	assert.True(t, errors.Is(err, jsonio.ErrConfiguration))

	_, err = jsonio.Resolver{}.Resolve(context.Background(), jsonio.ReaderConfig{BackendName: "yaml"})
	require.True(t, errors.Is(err, jsonio.ErrConfiguration))
	for _, id := range codec.IDs() {
		assert.Contains(t, err.Error(), id.String())
	}
}

func TestResolver_Registered(t *testing.T) {
	reg := jsonio.NewRegistry()
	fc := &fakeCodec{name: "rapidjson"}
	require.NoError(t, reg.Register(codec.RapidJSON, func() (codec.Codec, error) { return fc, nil }))

	res, err := jsonio.Resolver{Registry: reg}.Resolve(context.Background(), jsonio.ReaderConfig{BackendName: "RapidJSON"})
	require.NoError(t, err)
	assert.Same(t, fc, res.Codec)
	assert.Equal(t, codec.RapidJSON, res.ID)
	assert.False(t, res.Substituted)
}

func TestResolver_FallbackAndSafe(t *testing.T) {
	reg := jsonio.NewRegistry()
	rec := &recordingLogger{}
	rv := jsonio.Resolver{Registry: reg, Logger: rec}

	res, err := rv.Resolve(context.Background(), jsonio.ReaderConfig{BackendName: "orjson"})
	require.NoError(t, err)
	assert.True(t, res.Substituted)
	assert.Equal(t, codec.JSON, res.ID)
	assert.Equal(t, "json", res.Codec.Name())
	assert.Equal(t, []string{"warn", "info"}, rec.levels())

	rec2 := &recordingLogger{}
	rv.Logger = rec2
	_, err = rv.Resolve(context.Background(), jsonio.ReaderConfig{BackendName: "orjson", SafeMode: true})
	assert.True(t, errors.Is(err, jsonio.ErrBackendUnavailable))
	assert.Equal(t, []string{"warn"}, rec2.levels())
}

func TestResolver_RuntimeInstall(t *testing.T) {
	ctx := context.Background()

	t.Run("install then retry", func(t *testing.T) {
		reg := jsonio.NewRegistry()
		var installs []codec.ID
		var hookCalls []string
		inst := jsonio.InstallerFunc(func(_ context.Context, id codec.ID) error {
			installs = append(installs, id)
			return reg.Register(id, func() (codec.Codec, error) { return &fakeCodec{name: "simplejson"}, nil })
		})
		hooks := &jsonio.Hooks{
			BeforeInstall: func(codec.ID) { hookCalls = append(hookCalls, "before") },
			AfterInstall:  func(_ codec.ID, err error) { hookCalls = append(hookCalls, "after") },
		}
		rv := jsonio.Resolver{Registry: reg, Installer: inst, Logger: jsonio.DiscardLogger(), Hooks: hooks}

		res, err := rv.Resolve(ctx, jsonio.ReaderConfig{BackendName: "simplejson", RuntimeInstall: true})
		require.NoError(t, err)
		assert.Equal(t, codec.SimpleJSON, res.ID)
		assert.False(t, res.Substituted)
		assert.Equal(t, []codec.ID{codec.SimpleJSON}, installs)
		assert.Equal(t, []string{"before", "after"}, hookCalls)

		_, err = rv.Resolve(ctx, jsonio.ReaderConfig{BackendName: "simplejson", RuntimeInstall: true})
		require.NoError(t, err)
		assert.Len(t, installs, 1)
	})

	t.Run("failed install is fatal even without safe mode", func(t *testing.T) {
		reg := jsonio.NewRegistry()
		boom := errors.New("offline")
		rv := jsonio.Resolver{Registry: reg, Installer: jsonio.InstallerFunc(func(context.Context, codec.ID) error { return boom }), Logger: jsonio.DiscardLogger()}
		_, err := rv.Resolve(ctx, jsonio.ReaderConfig{BackendName: "ujson", RuntimeInstall: true})
		assert.True(t, errors.Is(err, jsonio.ErrBackendUnavailable))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("install that does not help is fatal", func(t *testing.T) {
		rv := jsonio.Resolver{Registry: jsonio.NewRegistry(), Installer: jsonio.InstallerFunc(func(context.Context, codec.ID) error { return nil }), Logger: jsonio.DiscardLogger()}
		_, err := rv.Resolve(ctx, jsonio.ReaderConfig{BackendName: "ujson", RuntimeInstall: true})
		assert.True(t, errors.Is(err, jsonio.ErrBackendUnavailable))
	})

	t.Run("no installer", func(t *testing.T) {
		rv := jsonio.Resolver{Registry: jsonio.NewRegistry(), Logger: jsonio.DiscardLogger()}
		_, err := rv.Resolve(ctx, jsonio.ReaderConfig{BackendName: "ujson", RuntimeInstall: true})
		assert.True(t, errors.Is(err, jsonio.ErrBackendUnavailable))
	})

	t.Run("concurrent resolutions install once", func(t *testing.T) {
		reg := jsonio.NewRegistry()
		var installs atomic.Int32
		inst := jsonio.InstallerFunc(func(_ context.Context, id codec.ID) error {
			installs.Add(1)
			return reg.Register(id, func() (codec.Codec, error) { return &fakeCodec{name: "orjson"}, nil })
		})
		rv := jsonio.Resolver{Registry: reg, Installer: inst, Logger: jsonio.DiscardLogger()}

		var wg sync.WaitGroup
		for range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := rv.Resolve(ctx, jsonio.ReaderConfig{BackendName: "orjson", RuntimeInstall: true})
				assert.NoError(t, err)
				assert.Equal(t, codec.OrJSON, res.ID)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), installs.Load())
	})
}
