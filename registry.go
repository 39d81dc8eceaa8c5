package jsonio

import (
	"context"
	"sort"
	"sync"

	"github.com/reoring/jsonio/backend/stdjson"
	"github.com/reoring/jsonio/codec"
)

// Constructor builds a backend instance. A non-nil error means the backend
// is not usable in this process.
type Constructor func() (codec.Codec, error)

// Registry maps backend IDs to lazily constructed, cached instances. The
// baseline JSON backend is always registered. A Registry is safe for
// concurrent use and serializes installs.
type Registry struct {
	mu    sync.RWMutex
	ctors map[codec.ID]Constructor
	cache map[codec.ID]codec.Codec

	installMu sync.Mutex
}

// DefaultRegistry is used by Readers that are not given a Registry.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a Registry holding only the baseline backend.
func NewRegistry() *Registry {
	return &Registry{
		ctors: map[codec.ID]Constructor{
			codec.JSON: func() (codec.Codec, error) { return stdjson.New(), nil },
		},
		cache: make(map[codec.ID]codec.Codec),
	}
}

// Register installs ctor for id, replacing any previous constructor and
// dropping its cached instance.
func (r *Registry) Register(id codec.ID, ctor Constructor) error {
	if !id.Valid() {
		return configError("cannot register invalid backend id %d", int(id))
	}
	if ctor == nil {
		return configError("nil constructor for backend %s", id)
	}
	r.mu.Lock()
	r.ctors[id] = ctor
	delete(r.cache, id)
	r.mu.Unlock()
	return nil
}

// Unregister removes id. The baseline backend cannot be removed.
func (r *Registry) Unregister(id codec.ID) {
	if id == codec.JSON {
		return
	}
	r.mu.Lock()
	delete(r.ctors, id)
	delete(r.cache, id)
	r.mu.Unlock()
}

// Registered reports whether a constructor exists for id.
func (r *Registry) Registered(id codec.ID) bool {
	r.mu.RLock()
	_, ok := r.ctors[id]
	r.mu.RUnlock()
	return ok
}

// IDs lists registered backends in declaration order.
func (r *Registry) IDs() []codec.ID {
	r.mu.RLock()
	ids := make([]codec.ID, 0, len(r.ctors))
	for id := range r.ctors {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Load returns the cached instance for id, constructing it on first use.
func (r *Registry) Load(id codec.ID) (codec.Codec, error) {
	r.mu.RLock()
	c, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cache[id]; ok {
		return c, nil
	}
	ctor, ok := r.ctors[id]
	if !ok {
		return nil, newError(CodeBackendUnavailable, "resolve", id.String(), "backend is not installed", nil)
	}
	c, err := ctor()
	if err != nil {
		return nil, newError(CodeBackendUnavailable, "resolve", id.String(), "backend failed to initialize", err)
	}
	r.cache[id] = c
	return c, nil
}

// Baseline returns the always-available JSON backend.
func (r *Registry) Baseline() codec.Codec {
	if c, err := r.Load(codec.JSON); err == nil {
		return c
	}
	return stdjson.New()
}

// loadOrInstall retries Load once after running inst. Installs for the same
// registry never overlap, and a backend installed by a concurrent caller is
// picked up without installing again.
func (r *Registry) loadOrInstall(ctx context.Context, id codec.ID, inst Installer, hooks *Hooks) (codec.Codec, error) {
	r.installMu.Lock()
	defer r.installMu.Unlock()

	if c, err := r.Load(id); err == nil {
		return c, nil
	}
	if inst == nil {
		return nil, newError(CodeBackendUnavailable, "resolve", id.String(), "runtime install requested but no installer is configured", nil)
	}
	hooks.beforeInstall(id)
	err := inst.Install(ctx, id)
	hooks.afterInstall(id, err)
	if err != nil {
		return nil, newError(CodeBackendUnavailable, "resolve", id.String(), "install failed", err)
	}
	c, err := r.Load(id)
	if err != nil {
		return nil, newError(CodeBackendUnavailable, "resolve", id.String(), "backend still unavailable after install", err)
	}
	return c, nil
}
