package jsonio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultNetworkTimeout bounds URL fetches unless configured otherwise.
const DefaultNetworkTimeout = 5 * time.Second

// Opener turns a classified source into a readable UTF-8 text stream.
type Opener interface {
	Open(ctx context.Context, src Classified, encoding string, sizeHint int64) (io.ReadCloser, error)
}

// Loader is the default Opener. It is safe for concurrent use.
type Loader struct {
	client  *http.Client
	logger  Logger
	timeout atomic.Int64
}

// NewLoader returns a Loader using client for URL sources (http.DefaultClient
// when nil) and logger for advisories (slog.Default when nil).
func NewLoader(client *http.Client, logger Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = defaultLogger()
	}
	l := &Loader{client: client, logger: logger}
	l.timeout.Store(int64(DefaultNetworkTimeout))
	return l
}

// NetworkTimeout returns the per-fetch timeout; zero means none.
func (l *Loader) NetworkTimeout() time.Duration { return time.Duration(l.timeout.Load()) }

// SetNetworkTimeout changes the per-fetch timeout. Zero disables it.
func (l *Loader) SetNetworkTimeout(d time.Duration) error {
	if d < 0 {
		return configError("network timeout must not be negative, got %s", d)
	}
	l.timeout.Store(int64(d))
	return nil
}

// Open opens src. After opening a KindStream source the caller's reader is
// exhausted. The returned stream must be closed by the caller.
func (l *Loader) Open(ctx context.Context, src Classified, encoding string, sizeHint int64) (io.ReadCloser, error) {
	switch src.Kind {
	case KindURL:
		return l.openURL(ctx, src.URL, encoding)
	case KindPath:
		return l.openPath(src.Path, encoding, sizeHint)
	case KindBytes:
		text, err := decodeText(src.Bytes, encoding)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(strings.NewReader(text)), nil
	case KindJSONText:
		return io.NopCloser(strings.NewReader(src.Text)), nil
	case KindStream:
		data, err := io.ReadAll(src.Stream)
		if err != nil {
			return nil, fmt.Errorf("drain stream: %w", err)
		}
		text, err := decodeText(data, encoding)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(strings.NewReader(text)), nil
	}
	return nil, newError(CodeInvalidSource, "open", "", fmt.Sprintf("unexpected source kind %d", src.Kind), nil)
}

func (l *Loader) openURL(ctx context.Context, url, encoding string) (io.ReadCloser, error) {
	if t := l.NetworkTimeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(CodeNetwork, "open", url, "invalid request", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, newError(CodeNetwork, "open", url, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(CodeNetwork, "open", url, fmt.Sprintf("unexpected status code %d", resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(CodeNetwork, "open", url, "failed to read response body", err)
	}
	text, err := decodeText(body, encoding)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(text)), nil
}

func (l *Loader) openPath(p Path, encoding string, sizeHint int64) (io.ReadCloser, error) {
	name := string(p)
	fi, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(CodeNotFound, "open", name, "", err)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if fi.IsDir() {
		return nil, newError(CodeIsADirectory, "open", name, "", nil)
	}
	if size := fi.Size(); sizeHint > 0 && size > sizeHint {
		l.logger.Warn("payload exceeds recommended size for backend",
			"path", name, "size", size, "size_class", ClassifySize(size).String(), "limit", sizeHint)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	r, err := newDecodingReader(f, encoding)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return readCloser{Reader: r, Closer: f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
