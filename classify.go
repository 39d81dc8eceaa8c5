package jsonio

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// NetworkSchemes lists the prefixes that classify a string as a URL.
var NetworkSchemes = []string{"http://", "https://"}

// Characters that never occur in a plausible path but are structural in
// JSON text. b' and b" catch stringified byte literals.
var jsonMarkers = []string{"{", "[", `"`, "'", "b'", `b"`}

var pathChars = regexp.MustCompile(`^[a-zA-Z0-9_\-/\\.]+$`)

// Classifier maps a source value to a Classified. The zero value probes the
// real filesystem when FSProbe is requested.
type Classifier struct {
	// Probe overrides the filesystem probe. It reports whether name behaves
	// like a creatable file path.
	Probe func(name string) bool
}

var defaultClassifier Classifier

// Classify classifies src with the default Classifier.
func Classify(src any, flags Flags) (Classified, error) {
	return defaultClassifier.Classify(src, flags)
}

// Classify decides what src is. The checks run in a fixed order and the
// first match wins:
//
//  1. absent source: ErrInvalidSource, then conflicting force flags:
//     ErrConfiguration
//  2. ForceIsJSON: src must be a string, KindJSONText
//  3. ForceIsPath: KindPath without an existence check
//  4. string with a network scheme prefix: KindURL
//  5. string or Path accepted by the path heuristic: KindPath
//  6. []byte: KindBytes
//  7. io.Reader: KindStream
//  8. anything else: KindJSONText of its string form
//
// Only steps 1 and 2 produce an *Error. A value that cannot be rendered as
// text in steps 3 or 8 yields the coercion error unchanged.
func (c Classifier) Classify(src any, flags Flags) (Classified, error) {
	if isAbsent(src) {
		return Classified{}, newError(CodeInvalidSource, "classify", "", "cannot read from nil", nil)
	}
	if err := flags.Validate(); err != nil {
		return Classified{}, err
	}

	if flags.Has(ForceIsJSON) {
		s, ok := src.(string)
		if !ok {
			return Classified{}, newError(CodeInvalidSource, "classify", "", "ForceIsJSON is set but source is "+reflect.TypeOf(src).String(), nil)
		}
		return Classified{Kind: KindJSONText, Text: s}, nil
	}

	if flags.Has(ForceIsPath) {
		s, err := pathText(src)
		if err != nil {
			return Classified{}, err
		}
		return Classified{Kind: KindPath, Path: newPath(s)}, nil
	}

	if s, ok := src.(string); ok && hasNetworkScheme(s) {
		return Classified{Kind: KindURL, URL: s}, nil
	}

	switch v := src.(type) {
	case string:
		if c.isPath(v, flags) {
			return Classified{Kind: KindPath, Path: newPath(v)}, nil
		}
	case Path:
		if c.isPath(string(v), flags) {
			return Classified{Kind: KindPath, Path: newPath(string(v))}, nil
		}
	}

	switch v := src.(type) {
	case []byte:
		return Classified{Kind: KindBytes, Bytes: v}, nil
	case json.RawMessage:
		return Classified{Kind: KindBytes, Bytes: []byte(v)}, nil
	case io.Reader:
		return Classified{Kind: KindStream, Stream: v}, nil
	case Path:
		return Classified{Kind: KindJSONText, Text: string(v)}, nil
	}

	s, err := cast.ToStringE(src)
	if err != nil {
		return Classified{}, err
	}
	return Classified{Kind: KindJSONText, Text: s}, nil
}

func (c Classifier) isPath(s string, flags Flags) bool {
	if !flags.Has(Safe) && flags.Has(FSProbe) {
		probe := c.Probe
		if probe == nil {
			probe = probeFS
		}
		return probe(s)
	}
	return safeIsPath(s)
}

// safeIsPath is the conservative path heuristic: a .json suffix accepts,
// JSON-structural characters reject, and otherwise the value must consist of
// ordinary filename characters.
func safeIsPath(s string) bool {
	if strings.HasSuffix(s, ".json") {
		return true
	}
	for _, m := range jsonMarkers {
		if strings.Contains(s, m) {
			return false
		}
	}
	return pathChars.MatchString(s)
}

// probeFS reports whether name can be created as a file. An existing regular
// file counts as a path and is left untouched; otherwise a zero-byte file is
// created exclusively and removed again. Every failure, including a missing
// parent directory, is a negative answer. Concurrent probes of the same name
// are not coordinated.
func probeFS(name string) bool {
	if name == "" {
		return false
	}
	if fi, err := os.Lstat(name); err == nil {
		return fi.Mode().IsRegular()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return false
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return false
	}
	return os.Remove(name) == nil
}

func hasNetworkScheme(s string) bool {
	for _, p := range NetworkSchemes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func pathText(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case Path:
		return string(v), nil
	case []byte:
		return string(v), nil
	}
	return cast.ToStringE(src)
}

func isAbsent(src any) bool {
	if src == nil {
		return true
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
