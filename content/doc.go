// Package content decodes request bodies and encodes response bodies
// through a pair of injectable handler registries.
//
// The request side maps Content-Type header values to decoder functions,
// the response side maps MIME types to encoder functions. A new Registry
// carries application/json on both sides; everything else is registered by
// the caller:
//
//	reg := content.NewRegistry()
//	reg.RegisterEncoder("text/plain", func(v any) (string, error) {
//		return fmt.Sprint(v), nil
//	})
//
// Decoding never fails the caller: DecodeBody always returns a BodyData
// whose fields describe what happened (body present, raw text, understood,
// capture of any failure). Encoding negotiates the media type from the
// request's Accept header in the client's stated preference order and
// degrades through an error payload to a generic JSON 500, so
// EncodeResponse always returns a usable response.
//
// Registries are read during traffic without locking. Register handlers
// before serving; concurrent registration is the caller's responsibility.
//
// The package-level Default registry backs the convenience functions
// DecodeBody and EncodeResponse. Nothing in this module mutates it.
package content
