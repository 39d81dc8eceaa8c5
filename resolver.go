package jsonio

import (
	"context"
	"reflect"
	"strings"

	"github.com/reoring/jsonio/codec"
)

// Resolution is the outcome of backend resolution.
type Resolution struct {
	Codec codec.Codec
	ID    codec.ID
	Name  string
	// Substituted is set when the baseline replaced an unavailable backend.
	Substituted bool
}

// SizeHint is the advisory payload size limit for the resolved backend.
func (r Resolution) SizeHint() int64 {
	if h, ok := r.Codec.(codec.SizeHinter); ok {
		return h.SizeHint()
	}
	return r.ID.SizeLimit()
}

// Resolver turns a ReaderConfig into a concrete backend.
type Resolver struct {
	Registry  *Registry // DefaultRegistry when nil
	Installer Installer
	Logger    Logger // slog.Default when nil
	Hooks     *Hooks
}

// Resolve picks the backend for cfg. Exactly one path runs:
//
//   - an explicit cfg.Backend is returned as-is;
//   - otherwise cfg.BackendName must name a known ID and its registered
//     implementation is constructed;
//   - if construction fails and RuntimeInstall is set, the Installer runs
//     and construction is retried once; a second failure is fatal;
//   - else in safe mode the failure is returned;
//   - else the baseline JSON backend is substituted and logged.
func (rv Resolver) Resolve(ctx context.Context, cfg ReaderConfig) (Resolution, error) {
	if cfg.BackendName == "" && isAbsent(cfg.Backend) {
		return Resolution{}, configError("either BackendName or Backend must be provided")
	}

	if !isAbsent(cfg.Backend) {
		name := cfg.BackendName
		if name == "" {
			name = displayName(cfg.Backend)
		}
		id, ok := codec.ParseID(name)
		if !ok {
			id = codec.Custom
		}
		return Resolution{Codec: cfg.Backend, ID: id, Name: name}, nil
	}

	id, ok := codec.ParseID(cfg.BackendName)
	if !ok {
		return Resolution{}, configError("invalid backend %q, must be one of: %s", cfg.BackendName, codec.Names())
	}

	reg := rv.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	logger := rv.Logger
	if logger == nil {
		logger = defaultLogger()
	}

	c, err := reg.Load(id)
	if err == nil {
		return Resolution{Codec: c, ID: id, Name: id.String()}, nil
	}

	if cfg.RuntimeInstall {
		c, err := reg.loadOrInstall(ctx, id, rv.Installer, rv.Hooks)
		if err != nil {
			return Resolution{}, err
		}
		logger.Info("installed backend at runtime", "backend", id.String())
		return Resolution{Codec: c, ID: id, Name: id.String()}, nil
	}

	logger.Warn("could not load backend", "backend", id.String(), "error", err)
	if cfg.SafeMode {
		return Resolution{}, err
	}
	logger.Info("falling back to baseline backend", "backend", id.String(), "fallback", codec.JSON.String())
	return Resolution{Codec: reg.Baseline(), ID: codec.JSON, Name: codec.JSON.String(), Substituted: true}, nil
}

func displayName(c codec.Codec) string {
	if n := c.Name(); n != "" {
		return n
	}
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "unknown"
	}
	return strings.ToLower(t.Name())
}
