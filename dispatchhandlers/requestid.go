package dispatchhandlers

import (
	"github.com/google/uuid"

	"github.com/hashmux/hashmux/dispatch"
)

// MetaRequestID is the Context.Meta key under which RequestIDMiddleware
// stores the request ID.
const MetaRequestID = "request_id"

// RequestIDFromMeta returns the request ID stored in the context's Meta by
// RequestIDMiddleware. Returns an empty string if no ID is present.
func RequestIDFromMeta(ctx *dispatch.Context) string {
	if id, ok := ctx.Meta[MetaRequestID].(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the dispatch context, allowing ID generation based on
	// request data. Defaults to GenerateUUIDv4.
	GenerateFunc func(ctx *dispatch.Context) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestIDMiddleware returns a middleware that generates or propagates a
// request ID. The ID is stored in Context.Meta (for the wrapped handler)
// and set as a response header (for the caller).
func RequestIDMiddleware(cfg RequestIDConfig) dispatch.Middleware {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx *dispatch.Context) (*dispatch.Response, error) {
			id := ""
			if trustIncoming {
				id = ctx.Request.Header.Get(headerName)
			}

			if id == "" {
				id = generate(ctx)
			}

			if id != "" {
				ctx.Meta[MetaRequestID] = id
			}

			resp, err := next(ctx)

			if resp != nil && id != "" {
				resp.WithHeader(headerName, id)
			}

			return resp, err
		}
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *dispatch.Context) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *dispatch.Context) string {
	return uuid.Must(uuid.NewV7()).String()
}
