// Package jsonio reads JSON from whatever the caller has at hand:
//
// - a filesystem path (string or Path), an http(s) URL, raw JSON text,
//   a byte slice or an io.Reader
// - decoded by an interchangeable backend selected by name or by instance
// - with graceful fallback to the encoding/json baseline when a requested
//   backend is unavailable, unless safe mode asks for a hard failure
//
// Design policy:
// - Classification, opening, backend resolution and decoding are separate
//   steps (Classify, Loader, Resolver, Reader) so each can be replaced.
// - Backends live under backend/, one package per library, and are wired
//   into a Registry explicitly (see backend/bundled).
// - Errors carry a stable code; failures after the preconditions are
//   reported as *ParsingFailure with the cause reachable through errors.As.
//
// Typical usage:
//
//	v, err := jsonio.Read(ctx, "testdata/config.json")
//
//	r, err := jsonio.New(jsonio.WithBackendName("orjson"), jsonio.WithFlags(jsonio.Safe))
//	v, err := r.Read(ctx, body, jsonio.ReadValidator(s.Validator()))
package jsonio
