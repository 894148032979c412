package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashmux/hashmux/dispatch"
)

var (
	// ErrNoAcceptHeader is returned by Negotiate when the request carried
	// no Accept header.
	ErrNoAcceptHeader = errors.New("content: no accept header")

	// ErrNotAcceptable is returned by Negotiate when none of the accepted
	// media types has a registered encoder.
	ErrNotAcceptable = errors.New("content: no encoder for accepted media types")
)

// ResponseInit carries caller-supplied response metadata for
// EncodeResponse.
type ResponseInit struct {
	Status     int
	StatusText string
	Header     http.Header
}

// Negotiate selects the response media type for an Accept header value.
// The header is split on commas, ";"-qualified parameters are dropped, and
// the remaining types are scanned in the client's stated order; the first
// one with a registered encoder wins. Negotiation is presence-only, so
// quality weights are ignored along with the other parameters.
func (reg *Registry) Negotiate(accept string) (string, EncoderFunc, error) {
	if accept == "" {
		return "", nil, ErrNoAcceptHeader
	}

	for _, part := range strings.Split(accept, ",") {
		mediaType := part
		if idx := strings.Index(mediaType, ";"); idx >= 0 {
			mediaType = mediaType[:idx]
		}
		mediaType = strings.TrimSpace(mediaType)

		if enc, ok := reg.encoders[mediaType]; ok {
			return mediaType, enc, nil
		}
	}

	return "", nil, fmt.Errorf("%w: %q", ErrNotAcceptable, accept)
}

// EncodeResponse encodes v for the client described by r.
//
// The media type comes from Negotiate on the request's Accept header; a
// missing or unsatisfiable header yields a 415 response with a JSON error
// body. On success the response carries init's status, status text, and
// headers, with Content-Type forced to the negotiated type. An encoder
// failure is retried once with the error message as payload through the
// same encoder (status 500); a second failure degrades to a generic
// application/json 500. EncodeResponse always returns a response.
func (reg *Registry) EncodeResponse(r *http.Request, v any, init ...ResponseInit) *dispatch.Response {
	mediaType, enc, err := reg.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		return jsonError(http.StatusUnsupportedMediaType, err)
	}

	out, err := callEncoder(enc, v)
	if err == nil {
		return encoded(mediaType, out, init)
	}

	// Single retry: the captured failure as payload, same encoder.
	out, retryErr := callEncoder(enc, map[string]any{"error": err.Error()})
	if retryErr == nil {
		resp := dispatch.NewResponse(http.StatusInternalServerError, []byte(out))
		resp.Header.Set("Content-Type", mediaType)
		return resp
	}

	return jsonError(http.StatusInternalServerError, err)
}

// EncodeResponse encodes v using the Default registry.
func EncodeResponse(r *http.Request, v any, init ...ResponseInit) *dispatch.Response {
	return Default.EncodeResponse(r, v, init...)
}

func encoded(mediaType, body string, inits []ResponseInit) *dispatch.Response {
	resp := dispatch.NewResponse(http.StatusOK, []byte(body))

	if len(inits) > 0 {
		init := inits[0]

		if init.Status != 0 {
			resp.StatusCode = init.Status
		}
		resp.StatusText = init.StatusText

		for key, values := range init.Header {
			for _, value := range values {
				resp.Header.Add(key, value)
			}
		}
	}

	// The negotiated type always wins over init-supplied headers.
	resp.Header.Set("Content-Type", mediaType)

	return resp
}

// jsonError builds a degraded error response without consulting the
// registry, so this path cannot fail.
func jsonError(status int, err error) *dispatch.Response {
	body, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		body = []byte(`{"error":"encoding failure"}`)
	}

	resp := dispatch.NewResponse(status, body)
	resp.Header.Set("Content-Type", "application/json")

	return resp
}
