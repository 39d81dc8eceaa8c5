// Package bundled wires the backends shipped with this module into a
// jsonio.Registry. Registration is explicit: a fresh Registry only knows the
// baseline, so optional backends are either registered up front or made
// available on demand through Installer.
package bundled

import (
	"context"
	"fmt"

	"github.com/reoring/jsonio"
	"github.com/reoring/jsonio/codec"

	fastjsonbackend "github.com/reoring/jsonio/backend/fastjson"
	gojsonbackend "github.com/reoring/jsonio/backend/gojson"
	jsoniterbackend "github.com/reoring/jsonio/backend/jsoniter"
	sonicbackend "github.com/reoring/jsonio/backend/sonic"
	"github.com/reoring/jsonio/backend/stdjson"
)

var constructors = map[codec.ID]jsonio.Constructor{
	codec.JSON:       func() (codec.Codec, error) { return stdjson.New(), nil },
	codec.OrJSON:     func() (codec.Codec, error) { return sonicbackend.New() },
	codec.UJSON:      func() (codec.Codec, error) { return jsoniterbackend.New() },
	codec.RapidJSON:  func() (codec.Codec, error) { return fastjsonbackend.New() },
	codec.SimpleJSON: func() (codec.Codec, error) { return gojsonbackend.New() },
}

// Constructor returns the bundled constructor for id. Custom has none.
func Constructor(id codec.ID) (jsonio.Constructor, bool) {
	c, ok := constructors[id]
	return c, ok
}

// Register adds the bundled constructors for ids to r.
func Register(r *jsonio.Registry, ids ...codec.ID) error {
	for _, id := range ids {
		ctor, ok := Constructor(id)
		if !ok {
			return fmt.Errorf("bundled: no backend ships for %s", id)
		}
		if err := r.Register(id, ctor); err != nil {
			return err
		}
	}
	return nil
}

// RegisterAll adds every bundled backend to r.
func RegisterAll(r *jsonio.Registry) error {
	ids := make([]codec.ID, 0, len(constructors))
	for _, id := range codec.IDs() {
		if _, ok := constructors[id]; ok {
			ids = append(ids, id)
		}
	}
	return Register(r, ids...)
}

// Installer registers a bundled backend the first time it is asked for.
type Installer struct {
	Registry *jsonio.Registry
}

// NewInstaller returns an Installer targeting r (jsonio.DefaultRegistry when
// nil).
func NewInstaller(r *jsonio.Registry) *Installer {
	if r == nil {
		r = jsonio.DefaultRegistry
	}
	return &Installer{Registry: r}
}

func (i *Installer) Install(ctx context.Context, id codec.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Register(i.Registry, id)
}
