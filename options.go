package jsonio

import (
	"net/http"
	"time"

	"github.com/reoring/jsonio/codec"
)

// Option configures a Reader.
type Option func(*Reader)

// WithConfig replaces the whole configuration.
func WithConfig(cfg ReaderConfig) Option {
	return func(r *Reader) { r.cfg = cfg }
}

// WithFlags merges f into the configuration.
func WithFlags(f Flags) Option {
	return func(r *Reader) {
		c := ConfigFromFlags(f|r.cfg.Flags(), r.cfg.BackendName)
		c.Backend, c.Decoder = r.cfg.Backend, r.cfg.Decoder
		c.Encoding, c.NetworkTimeout = r.cfg.Encoding, r.cfg.NetworkTimeout
		r.cfg = c
	}
}

// WithBackendName selects a backend by name.
func WithBackendName(name string) Option {
	return func(r *Reader) {
		r.cfg.BackendName = name
		r.cfg.Backend = nil
	}
}

// WithBackend injects a backend instance, bypassing the registry. Its
// display name comes from the instance.
func WithBackend(c codec.Codec) Option {
	return func(r *Reader) {
		r.cfg.Backend = c
		r.cfg.BackendName = ""
	}
}

// WithDecoder sets the default decoder override for every Read.
func WithDecoder(f codec.DecoderFactory) Option {
	return func(r *Reader) { r.cfg.Decoder = f }
}

// WithEncoding sets the default encoding of byte sources.
func WithEncoding(name string) Option {
	return func(r *Reader) { r.cfg.Encoding = name }
}

// WithNetworkTimeout bounds URL fetches.
func WithNetworkTimeout(d time.Duration) Option {
	return func(r *Reader) { r.cfg.NetworkTimeout = d }
}

// WithRegistry sets the backend registry.
func WithRegistry(reg *Registry) Option {
	return func(r *Reader) { r.registry = reg }
}

// WithInstaller sets the installer used when RuntimeInstall is enabled.
func WithInstaller(inst Installer) Option {
	return func(r *Reader) { r.installer = inst }
}

// WithLogger sets the advisory sink.
func WithLogger(l Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Reader) { r.httpClient = c }
}

// WithOpener replaces the default Loader.
func WithOpener(o Opener) Option {
	return func(r *Reader) { r.opener = o }
}

// WithClassifier replaces the default Classifier.
func WithClassifier(c Classifier) Option {
	return func(r *Reader) { r.classifier = c }
}

// WithHooks registers pipeline observers.
func WithHooks(h Hooks) Option {
	return func(r *Reader) { r.hooks = &h }
}

// ReadOption tunes a single Read call.
type ReadOption func(*readOptions)

type readOptions struct {
	flags     Flags
	encoding  string
	decoder   codec.DecoderFactory
	validator Validator
	codecOpts codec.Options
}

// Validator inspects a decoded value. Its error is returned unchanged.
type Validator func(v any) error

// ReadFlags adds per-call classification flags.
func ReadFlags(f Flags) ReadOption {
	return func(o *readOptions) { o.flags |= f }
}

// ReadEncoding overrides the encoding for one call.
func ReadEncoding(name string) ReadOption {
	return func(o *readOptions) { o.encoding = name }
}

// ReadDecoder overrides the low-level decoder for one call. The backend must
// implement codec.PluggableCodec.
func ReadDecoder(f codec.DecoderFactory) ReadOption {
	return func(o *readOptions) { o.decoder = f }
}

// ReadValidator runs v after decoding.
func ReadValidator(v Validator) ReadOption {
	return func(o *readOptions) { o.validator = v }
}

// ReadCodecOptions passes options through to the backend.
func ReadCodecOptions(opts codec.Options) ReadOption {
	return func(o *readOptions) { o.codecOpts = opts }
}
