package jsonio

import "strings"

// Flags is an immutable set of behavioral toggles combined with |.
type Flags uint16

const (
	// Safe selects strict backend resolution and the conservative path
	// heuristic; the filesystem is never probed.
	Safe Flags = 1 << iota
	// NetworkSources is reserved for callers that gate URL sources; the
	// classifier itself recognizes URLs regardless.
	NetworkSources
	// DynamicBackend permits switching the backend of a live Reader.
	DynamicBackend
	// RuntimeInstall permits installing a missing backend on demand.
	RuntimeInstall
	// ForceIsPath treats the source as a filesystem path.
	ForceIsPath
	// ForceIsJSON treats the source as JSON text.
	ForceIsJSON
	// FSProbe enables the create/remove filesystem probe when Safe is unset.
	FSProbe

	// None is the empty set.
	None Flags = 0
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{Safe, "Safe"},
	{NetworkSources, "NetworkSources"},
	{DynamicBackend, "DynamicBackend"},
	{RuntimeInstall, "RuntimeInstall"},
	{ForceIsPath, "ForceIsPath"},
	{ForceIsJSON, "ForceIsJSON"},
	{FSProbe, "FSProbe"},
}

// Has reports whether every flag in x is set.
func (f Flags) Has(x Flags) bool { return f&x == x }

// Validate rejects contradictory combinations.
func (f Flags) Validate() error {
	if f.Has(ForceIsJSON | ForceIsPath) {
		return configError("ForceIsJSON and ForceIsPath cannot be used together")
	}
	return nil
}

func (f Flags) String() string {
	if f == None {
		return "None"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.f) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}
