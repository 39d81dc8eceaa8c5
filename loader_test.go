package jsonio_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonio"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) Warn(msg string, args ...any) { l.add("warn", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any) { l.add("info", msg, args) }

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.level)
	}
	return out
}

func openAll(t *testing.T, l *jsonio.Loader, cs jsonio.Classified, enc string, hint int64) (string, error) {
	t.Helper()
	rc, err := l.Open(context.Background(), cs, enc, hint)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	return string(b), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestLoader_Bytes(t *testing.T) {
	l := jsonio.NewLoader(nil, jsonio.DiscardLogger())

	got, err := openAll(t, l, jsonio.Classified{Kind: jsonio.KindBytes, Bytes: []byte(`{"a":"ü"}`)}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"ü"}`, got)

	latin1 := []byte{'{', '"', 'a', '"', ':', '"', 0xe9, '"', '}'}
	got, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindBytes, Bytes: latin1}, "latin1", 0)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"é"}`, got)

	_, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindBytes, Bytes: latin1}, "utf-8", 0)
	assert.True(t, errors.Is(err, jsonio.ErrDecode), "got %v", err)

	_, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindBytes, Bytes: []byte(`{}`)}, "no-such-charset", 0)
	assert.True(t, errors.Is(err, jsonio.ErrDecode), "got %v", err)
}

func TestLoader_TextAndStream(t *testing.T) {
	l := jsonio.NewLoader(nil, jsonio.DiscardLogger())

	got, err := openAll(t, l, jsonio.Classified{Kind: jsonio.KindJSONText, Text: `[1,2]`}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, got)

	src := strings.NewReader(`{"s":true}`)
	got, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindStream, Stream: src}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, `{"s":true}`, got)
	assert.Zero(t, src.Len(), "stream is drained")

	_, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindStream, Stream: io.MultiReader(strings.NewReader("{"), failingReader{})}, "", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}

var errBoom = errors.New("boom")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBoom }

func TestLoader_Path(t *testing.T) {
	l := jsonio.NewLoader(nil, jsonio.DiscardLogger())

	p := writeFile(t, "ok.json", []byte(`{"k":1}`))
	got, err := openAll(t, l, jsonio.Classified{Kind: jsonio.KindPath, Path: jsonio.Path(p)}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, `{"k":1}`, got)

	p = writeFile(t, "latin1.json", []byte{'"', 0xfc, '"'})
	got, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindPath, Path: jsonio.Path(p)}, "iso-8859-1", 0)
	require.NoError(t, err)
	assert.Equal(t, `"ü"`, got)

	_, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindPath, Path: jsonio.Path(p)}, "", 0)
	assert.True(t, errors.Is(err, jsonio.ErrDecode), "got %v", err)
}

func TestLoader_PathErrors(t *testing.T) {
	l := jsonio.NewLoader(nil, jsonio.DiscardLogger())
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.json")
	_, err := openAll(t, l, jsonio.Classified{Kind: jsonio.KindPath, Path: jsonio.Path(missing)}, "", 0)
	require.True(t, errors.Is(err, jsonio.ErrNotFound), "got %v", err)
	e, ok := jsonio.AsError(err)
	require.True(t, ok)
	assert.Equal(t, missing, e.Source)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindPath, Path: jsonio.Path(dir)}, "", 0)
	require.True(t, errors.Is(err, jsonio.ErrIsADirectory), "got %v", err)
	e, _ = jsonio.AsError(err)
	assert.Equal(t, dir, e.Source)
}

func TestLoader_OversizeIsAdvisory(t *testing.T) {
	rec := &recordingLogger{}
	l := jsonio.NewLoader(nil, rec)
	p := writeFile(t, "big.json", []byte(`[1,2,3,4,5,6,7,8,9]`))

	got, err := openAll(t, l, jsonio.Classified{Kind: jsonio.KindPath, Path: jsonio.Path(p)}, "", 4)
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3,4,5,6,7,8,9]`, got)
	require.Equal(t, []string{"warn"}, rec.levels())
	assert.Contains(t, rec.entries[0].args, p)

	rec2 := &recordingLogger{}
	l2 := jsonio.NewLoader(nil, rec2)
	_, err = openAll(t, l2, jsonio.Classified{Kind: jsonio.KindPath, Path: jsonio.Path(p)}, "", 1<<20)
	require.NoError(t, err)
	assert.Empty(t, rec2.levels())
}

func TestLoader_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			fmt.Fprint(w, `{"remote":true}`)
		case "/latin1":
			_, _ = w.Write([]byte{'"', 0xe9, '"'})
		case "/slow":
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := jsonio.NewLoader(srv.Client(), jsonio.DiscardLogger())

	got, err := openAll(t, l, jsonio.Classified{Kind: jsonio.KindURL, URL: srv.URL + "/ok"}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, `{"remote":true}`, got)

	got, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindURL, URL: srv.URL + "/latin1"}, "windows-1252", 0)
	require.NoError(t, err)
	assert.Equal(t, `"é"`, got)

	_, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindURL, URL: srv.URL + "/missing"}, "", 0)
	require.True(t, errors.Is(err, jsonio.ErrNetwork), "got %v", err)
	assert.False(t, jsonio.IsTimeout(err))

	require.NoError(t, l.SetNetworkTimeout(50*time.Millisecond))
	_, err = openAll(t, l, jsonio.Classified{Kind: jsonio.KindURL, URL: srv.URL + "/slow"}, "", 0)
	require.True(t, errors.Is(err, jsonio.ErrNetwork), "got %v", err)
	assert.True(t, jsonio.IsTimeout(err), "got %v", err)
}

func TestLoader_NetworkTimeout(t *testing.T) {
	l := jsonio.NewLoader(nil, nil)
	assert.Equal(t, jsonio.DefaultNetworkTimeout, l.NetworkTimeout())

	require.NoError(t, l.SetNetworkTimeout(0))
	assert.Zero(t, l.NetworkTimeout())

	err := l.SetNetworkTimeout(-time.Second)
	assert.True(t, errors.Is(err, jsonio.ErrConfiguration))
	assert.Zero(t, l.NetworkTimeout())
}
