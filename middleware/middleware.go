// Package middleware decodes JSON request bodies through a jsonio.Reader
// and exposes the decoded value to downstream handlers.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/reoring/jsonio"
	"github.com/reoring/jsonio/schema"
)

// DefaultMaxBodyBytes bounds request bodies unless the caller says otherwise.
const DefaultMaxBodyBytes = 10 << 20

type ctxKeyDecoded struct{}

// ContextWithDecoded attaches a decoded body to ctx.
func ContextWithDecoded(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, decoded{v})
}

// DecodedFromContext retrieves the decoded body. The boolean is false when
// no body was decoded, which is distinct from a JSON null body.
func DecodedFromContext(ctx context.Context) (any, bool) {
	d, ok := ctx.Value(ctxKeyDecoded{}).(decoded)
	return d.v, ok
}

type decoded struct{ v any }

// Options tune body decoding.
type Options struct {
	// Reader decodes bodies; a default Reader is used when nil.
	Reader *jsonio.Reader
	// MaxBodyBytes caps the body; DefaultMaxBodyBytes when zero, unlimited
	// when negative.
	MaxBodyBytes int64
	// ReadOptions are passed to every Read, e.g. jsonio.ReadValidator.
	ReadOptions []jsonio.ReadOption
}

// DecodeBody reads and decodes body.
func DecodeBody(ctx context.Context, body io.Reader, opt Options) (any, error) {
	if body == nil {
		body = http.NoBody
	}
	if opt.Reader == nil {
		return jsonio.Read(ctx, body, opt.ReadOptions...)
	}
	return opt.Reader.Read(ctx, body, opt.ReadOptions...)
}

// DecodeJSON decodes the request body, stores the value in the request
// context and calls next. A body that cannot be read, decoded or validated
// is answered with 400 and an ErrorPayload; next is not called.
func DecodeJSON(opt Options) func(http.Handler) http.Handler {
	limit := opt.MaxBodyBytes
	if limit == 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body io.Reader = r.Body
			if limit > 0 && r.Body != nil {
				body = http.MaxBytesReader(w, r.Body, limit)
			}
			v, err := DecodeBody(r.Context(), body, opt)
			if err != nil {
				WriteError(w, http.StatusBadRequest, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), v)))
		})
	}
}

// WriteError writes ErrorPayload(err) as JSON with the given status.
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorPayload(err))
}

// ErrorPayload shapes a read error for JSON responses. Schema violations are
// listed individually; pipeline errors carry their code.
func ErrorPayload(err error) map[string]any {
	out := map[string]any{"error": err.Error()}
	var serr *schema.Error
	if errors.As(err, &serr) {
		issues := make([]map[string]string, 0, len(serr.Violations))
		for _, v := range serr.Violations {
			issues = append(issues, map[string]string{"path": v.Pointer, "keyword": v.Keyword, "message": v.Message})
		}
		out["issues"] = issues
		return out
	}
	if e, ok := jsonio.AsError(err); ok {
		out["code"] = e.Code
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		out["code"] = "body_too_large"
	}
	return out
}
