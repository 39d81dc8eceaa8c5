package jsonio

import (
	"context"
	"net/http"
	"sync"

	"github.com/reoring/jsonio/codec"
)

// Reader reads JSON from paths, URLs, byte slices, raw text and io.Readers
// through a backend resolved once and cached. A Reader is safe for
// concurrent use; each Read runs synchronously. Construct one with New; the
// zero value is not usable.
type Reader struct {
	cfg        ReaderConfig
	registry   *Registry
	installer  Installer
	logger     Logger
	httpClient *http.Client
	opener     Opener
	classifier Classifier
	hooks      *Hooks

	mu       sync.Mutex
	resolved *Resolution
}

// New builds a Reader. Without options it reads with the baseline backend.
// Configuration errors are reported here; backend resolution is deferred to
// first use.
func New(opts ...Option) (*Reader, error) {
	r := &Reader{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	if r.registry == nil {
		r.registry = DefaultRegistry
	}
	if r.logger == nil {
		r.logger = defaultLogger()
	}
	if r.opener == nil {
		l := NewLoader(r.httpClient, r.logger)
		if err := l.SetNetworkTimeout(r.cfg.networkTimeout()); err != nil {
			return nil, err
		}
		r.opener = l
	}
	return r, nil
}

// Config returns a copy of the configuration.
func (r *Reader) Config() ReaderConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Backend resolves (once) and returns the backend.
func (r *Reader) Backend(ctx context.Context) (Resolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(ctx)
}

func (r *Reader) resolveLocked(ctx context.Context) (Resolution, error) {
	if r.resolved != nil {
		return *r.resolved, nil
	}
	res, err := r.resolver().Resolve(ctx, r.cfg)
	if err != nil {
		return Resolution{}, err
	}
	r.resolved = &res
	return res, nil
}

func (r *Reader) resolver() Resolver {
	return Resolver{Registry: r.registry, Installer: r.installer, Logger: r.logger, Hooks: r.hooks}
}

// SetBackend switches to the named backend. It requires DynamicBackend.
func (r *Reader) SetBackend(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.cfg.DynamicBackend {
		return configError("switching backends requires DynamicBackend")
	}
	cfg := r.cfg
	cfg.BackendName = name
	cfg.Backend = nil
	res, err := r.resolver().Resolve(ctx, cfg)
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.resolved = &res
	return nil
}

// Read decodes src.
//
// Before any I/O it rejects an absent source (ErrInvalidSource), the
// ForceIsJSON|ForceIsPath combination (ErrConfiguration) and a decoder
// override against a backend that is not pluggable (ErrUnsupportedOption);
// backend resolution errors are also returned as-is. Any failure while
// classifying, opening or decoding is returned as a *ParsingFailure carrying
// the cause. A validator's error is returned unchanged.
func (r *Reader) Read(ctx context.Context, src any, opts ...ReadOption) (any, error) {
	cfg := r.Config()
	ro := readOptions{encoding: cfg.encoding(), decoder: cfg.Decoder}
	for _, opt := range opts {
		opt(&ro)
	}

	if isAbsent(src) {
		return nil, newError(CodeInvalidSource, "read", "", "source must not be nil", nil)
	}
	flags := cfg.ClassificationFlags() | ro.flags
	if err := flags.Validate(); err != nil {
		return nil, err
	}

	res, err := r.Backend(ctx)
	if err != nil {
		return nil, err
	}
	var pluggable codec.PluggableCodec
	if ro.decoder != nil {
		pc, ok := res.Codec.(codec.PluggableCodec)
		if !ok {
			return nil, newError(CodeUnsupportedOption, "read", res.Name, "decoder override is not supported by this backend", nil)
		}
		pluggable = pc
	}

	cs, err := r.classifier.Classify(src, flags)
	if err != nil {
		return nil, &ParsingFailure{Kind: KindUnknown, Err: err}
	}
	r.hooks.beforeRead(cs)
	v, err := r.decode(ctx, cs, res, pluggable, ro)
	r.hooks.afterRead(cs, err)
	if err != nil {
		return nil, &ParsingFailure{Kind: cs.Kind, Err: err}
	}

	if ro.validator != nil {
		r.hooks.beforeValidation(v)
		err := ro.validator(v)
		r.hooks.afterValidation(v, err)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (r *Reader) decode(ctx context.Context, cs Classified, res Resolution, pluggable codec.PluggableCodec, ro readOptions) (any, error) {
	rc, err := r.opener.Open(ctx, cs, ro.encoding, res.SizeHint())
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	if pluggable != nil {
		return pluggable.DecodeWith(rc, ro.decoder, ro.codecOpts)
	}
	return res.Codec.Decode(rc, ro.codecOpts)
}

// Encode serializes v with the resolved backend.
func (r *Reader) Encode(ctx context.Context, v any, opts codec.Options) ([]byte, error) {
	res, err := r.Backend(ctx)
	if err != nil {
		return nil, err
	}
	return res.Codec.Encode(v, opts)
}

var defaultReader = sync.OnceValues(func() (*Reader, error) { return New() })

// Read decodes src with a shared Reader using the baseline backend.
func Read(ctx context.Context, src any, opts ...ReadOption) (any, error) {
	r, err := defaultReader()
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, src, opts...)
}
