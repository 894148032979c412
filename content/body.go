package content

import (
	"fmt"
	"io"
	"net/http"
)

// reservedFields are the wire names of BodyData's own fields. Payload keys
// that collide with them are dropped from Fields, so the struct values win
// by construction.
var reservedFields = map[string]struct{}{
	"_body":       {},
	"_data":       {},
	"_understood": {},
	"_error":      {},
}

// BodyData describes the outcome of decoding one request body. The zero
// value is the "no body" outcome.
type BodyData struct {
	// HasBody reports whether the request carried a body at all.
	HasBody bool

	// Raw is the body text as read. It stays empty when there was no body
	// or the read itself failed.
	Raw string

	// Understood reports whether a decoder was found for the request's
	// Content-Type and succeeded.
	Understood bool

	// Err captures a read or decode failure. It is never set without
	// HasBody.
	Err error

	// Fields holds the decoded payload's keys, minus any that collide
	// with the reserved names. Nil unless Understood.
	Fields map[string]any
}

// Get returns the named payload field.
func (b BodyData) Get(name string) (any, bool) {
	value, ok := b.Fields[name]
	return value, ok
}

// DecodeBody reads the request body and decodes it with the registered
// handler for the request's Content-Type. The header value is looked up
// verbatim: "application/json; charset=utf-8" only matches a registration
// under that exact string.
//
// DecodeBody never fails the caller. A missing body, a read error, an
// unknown content type, and a decoder failure all produce a BodyData whose
// fields describe the outcome.
func (reg *Registry) DecodeBody(r *http.Request) BodyData {
	if r.Body == nil || r.Body == http.NoBody {
		return BodyData{}
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return BodyData{
			HasBody: true,
			Err:     fmt.Errorf("content: read body: %w", err),
		}
	}

	data := BodyData{
		HasBody: true,
		Raw:     string(raw),
	}

	dec, ok := reg.decoders[r.Header.Get("Content-Type")]
	if !ok {
		return data
	}

	fields, err := callDecoder(dec, data.Raw)
	if err != nil {
		data.Err = err
		return data
	}

	data.Understood = true
	data.Fields = scrubReserved(fields)

	return data
}

// DecodeBody decodes the request body using the Default registry.
func DecodeBody(r *http.Request) BodyData {
	return Default.DecodeBody(r)
}

func scrubReserved(fields map[string]any) map[string]any {
	for name := range reservedFields {
		delete(fields, name)
	}
	return fields
}
