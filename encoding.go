package jsonio

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is requested.
const DefaultEncoding = "utf-8"

// textDecoder returns a transformer that converts bytes in the named
// encoding to UTF-8. For UTF-8 itself the transformer only validates, so
// malformed input fails instead of being replaced.
func textDecoder(name string) (transform.Transformer, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, newError(CodeDecode, "open", "", "unknown encoding "+name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return encoding.UTF8Validator, nil
	}
	return enc.NewDecoder(), nil
}

// decodeText converts b to UTF-8 text.
func decodeText(b []byte, name string) (string, error) {
	t, err := textDecoder(name)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(t, b)
	if err != nil {
		return "", newError(CodeDecode, "open", "", "cannot decode bytes as "+name, err)
	}
	return string(out), nil
}

// decodingReader decodes r lazily; invalid UTF-8 surfaces as ErrDecode from
// Read while I/O errors pass through.
type decodingReader struct {
	r    io.Reader
	name string
}

func newDecodingReader(r io.Reader, name string) (io.Reader, error) {
	t, err := textDecoder(name)
	if err != nil {
		return nil, err
	}
	return &decodingReader{r: transform.NewReader(r, t), name: name}, nil
}

func (d *decodingReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		err = newError(CodeDecode, "read", "", "cannot decode stream as "+d.name, err)
	}
	return n, err
}
