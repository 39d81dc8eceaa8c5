package codec

import (
	"fmt"
	"strings"
)

// ID names a known backend. The set is closed: adding a backend means adding
// an ID and registering a constructor for it.
type ID int

const (
	JSON ID = iota
	OrJSON
	UJSON
	RapidJSON
	SimpleJSON
	Custom
)

var idNames = [...]string{
	JSON:       "json",
	OrJSON:     "orjson",
	UJSON:      "ujson",
	RapidJSON:  "rapidjson",
	SimpleJSON: "simplejson",
	Custom:     "custom",
}

// Recommended maximum payload sizes. Advisory only.
var sizeLimits = [...]int64{
	JSON:       150 << 20,
	OrJSON:     250 << 20,
	UJSON:      200 << 20,
	RapidJSON:  50 << 20,
	SimpleJSON: 50 << 20,
	Custom:     1<<31 - 1,
}

// IDs returns every known ID in declaration order.
func IDs() []ID {
	return []ID{JSON, OrJSON, UJSON, RapidJSON, SimpleJSON, Custom}
}

// Valid reports whether id is one of the declared IDs.
func (id ID) Valid() bool { return id >= JSON && id <= Custom }

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("codec.ID(%d)", int(id))
	}
	return idNames[id]
}

// SizeLimit is the recommended maximum payload size for the backend.
func (id ID) SizeLimit() int64 {
	if !id.Valid() {
		return sizeLimits[Custom]
	}
	return sizeLimits[id]
}

// ParseID maps a backend name to its ID. Matching is case-insensitive.
func ParseID(name string) (ID, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range idNames {
		if s == n {
			return ID(i), true
		}
	}
	return 0, false
}

// Names lists the valid backend names, comma separated.
func Names() string { return strings.Join(idNames[:], ", ") }

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("codec: invalid id %d", int(id))
	}
	return []byte(idNames[id]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	v, ok := ParseID(string(b))
	if !ok {
		return fmt.Errorf("codec: unknown backend %q, must be one of: %s", b, Names())
	}
	*id = v
	return nil
}
