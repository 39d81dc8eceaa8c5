package jsonio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonio/codec"
)

// ReaderConfig bundles everything that shapes a Reader. It is a value type:
// copy it freely, never mutate one that a Reader already holds. Every
// derived decision is a projection of the fields below.
type ReaderConfig struct {
	// Resolution.
	SafeMode       bool `yaml:"safe_mode"`
	RuntimeInstall bool `yaml:"runtime_install"`
	DynamicBackend bool `yaml:"dynamic_backend"`

	// Classification.
	FSProbe     bool `yaml:"fs_probe"`
	ForceIsJSON bool `yaml:"force_is_json"`
	ForceIsPath bool `yaml:"force_is_path"`

	// NetworkSources is carried through to Flags for callers that gate URLs.
	NetworkSources bool `yaml:"network_sources"`

	// Backend choice: at least one is required. When both are set, Backend
	// is used and BackendName becomes its display name.
	BackendName string      `yaml:"backend"`
	Backend     codec.Codec `yaml:"-"`

	// Decoder overrides the low-level decoder of pluggable backends.
	Decoder codec.DecoderFactory `yaml:"-"`

	// Encoding of byte sources; DefaultEncoding when empty.
	Encoding string `yaml:"encoding"`
	// NetworkTimeout bounds URL fetches; DefaultNetworkTimeout when zero.
	NetworkTimeout time.Duration `yaml:"network_timeout"`
}

// DefaultConfig selects the baseline backend with every flag off.
func DefaultConfig() ReaderConfig {
	return ReaderConfig{BackendName: codec.JSON.String()}
}

// ConfigFromFlags projects a Flags set onto a ReaderConfig.
func ConfigFromFlags(f Flags, backendName string) ReaderConfig {
	return ReaderConfig{
		SafeMode:       f.Has(Safe),
		RuntimeInstall: f.Has(RuntimeInstall),
		DynamicBackend: f.Has(DynamicBackend),
		FSProbe:        f.Has(FSProbe),
		ForceIsJSON:    f.Has(ForceIsJSON),
		ForceIsPath:    f.Has(ForceIsPath),
		NetworkSources: f.Has(NetworkSources),
		BackendName:    backendName,
	}
}

// Flags returns every flag the config enables.
func (c ReaderConfig) Flags() Flags {
	return c.ResolverFlags() | c.ClassificationFlags() | c.boolFlag(c.DynamicBackend, DynamicBackend) | c.boolFlag(c.NetworkSources, NetworkSources)
}

// ResolverFlags are the flags that affect backend resolution.
func (c ReaderConfig) ResolverFlags() Flags {
	return c.boolFlag(c.SafeMode, Safe) | c.boolFlag(c.RuntimeInstall, RuntimeInstall)
}

// ClassificationFlags are the flags that affect source classification.
// Safe is included so safe mode never probes the filesystem.
func (c ReaderConfig) ClassificationFlags() Flags {
	return c.boolFlag(c.SafeMode, Safe) |
		c.boolFlag(c.ForceIsJSON, ForceIsJSON) |
		c.boolFlag(c.ForceIsPath, ForceIsPath) |
		c.boolFlag(c.FSProbe, FSProbe)
}

func (ReaderConfig) boolFlag(on bool, f Flags) Flags {
	if on {
		return f
	}
	return None
}

// Validate checks the invariants that do not need a registry.
func (c ReaderConfig) Validate() error {
	if err := c.ClassificationFlags().Validate(); err != nil {
		return err
	}
	if c.BackendName == "" && isAbsent(c.Backend) {
		return configError("either BackendName or Backend must be provided")
	}
	if c.NetworkTimeout < 0 {
		return configError("network timeout must not be negative, got %s", c.NetworkTimeout)
	}
	return nil
}

func (c ReaderConfig) encoding() string {
	if c.Encoding == "" {
		return DefaultEncoding
	}
	return c.Encoding
}

func (c ReaderConfig) networkTimeout() time.Duration {
	if c.NetworkTimeout == 0 {
		return DefaultNetworkTimeout
	}
	return c.NetworkTimeout
}

// ParseConfig decodes a YAML (or JSON) document over DefaultConfig. Unknown
// keys are rejected.
func ParseConfig(data []byte) (ReaderConfig, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ReaderConfig{}, &Error{Code: CodeConfiguration, Op: "config", Message: "invalid config document", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return ReaderConfig{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (ReaderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReaderConfig{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}
