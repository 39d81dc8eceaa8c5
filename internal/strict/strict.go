// Package strict performs a token-level scan of a JSON document to enforce
// duplicate-key and nesting-depth policies that third-party decoders do not
// expose uniformly.
package strict

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reoring/jsonio/codec"
)

// Violation codes.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
)

// Violation reports the first policy breach found by Check.
type Violation struct {
	Code    string
	Path    string // JSON Pointer of the offending member
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s at %s: %s", v.Code, v.Path, v.Message)
}

// Policy selects the checks to run.
type Policy struct {
	DisallowDuplicateKeys bool
	MaxDepth              int // 0 disables the depth check
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// Check scans data and returns a *Violation for the first breach of p.
// Syntax errors are returned as-is; they are left for the decoder to report
// when p is disabled.
func Check(data []byte, p Policy) error {
	if !p.DisallowDuplicateKeys && p.MaxDepth <= 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []frame
	valuePath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := joinPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		return joinPointer(top.path, top.pendingKey)
	}
	closeValue := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
				top.pendingKey = ""
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				f := frame{kind: kindArray, path: valuePath()}
				if v == '{' {
					f.kind = kindObject
					f.keys = make(map[string]struct{})
					f.expectingKey = true
				}
				stack = append(stack, f)
				if p.MaxDepth > 0 && len(stack) > p.MaxDepth {
					return &Violation{Code: CodeMaxDepth, Path: normalize(f.path), Message: fmt.Sprintf("nesting exceeds %d", p.MaxDepth)}
				}
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
				closeValue()
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					if _, dup := top.keys[v]; dup && p.DisallowDuplicateKeys {
						return &Violation{Code: CodeDuplicateKey, Path: joinPointer(top.path, v), Message: "key '" + v + "' duplicated"}
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					top.pendingKey = v
					continue
				}
			}
			_ = valuePath()
			closeValue()
		default:
			_ = valuePath()
			closeValue()
		}
	}
}

// ErrEmpty is returned by Prepare for input holding no JSON value.
var ErrEmpty = errors.New("unexpected end of JSON input")

// Prepare drains r and applies the strict checks requested by opts.
func Prepare(r io.Reader, opts codec.Options) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}
	if opts.Strict() {
		if err := Check(data, Policy{DisallowDuplicateKeys: opts.DisallowDuplicateKeys, MaxDepth: opts.MaxDepth}); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
