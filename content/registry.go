package content

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DecoderFunc turns a request body's text into a flat field map. It may
// panic; callers invoke it through a recovering wrapper.
type DecoderFunc func(data string) (map[string]any, error)

// EncoderFunc turns a response value into body text. It may panic; callers
// invoke it through a recovering wrapper.
type EncoderFunc func(v any) (string, error)

// Registry holds the two content handler mappings: request-side
// Content-Type to decoder, response-side MIME type to encoder. Lookups on
// both sides use the key verbatim; no parameter stripping and no wildcard
// matching happens here.
type Registry struct {
	decoders map[string]DecoderFunc
	encoders map[string]EncoderFunc
}

// Default is a ready-to-use registry. Nothing in this module mutates it;
// callers extending it should do so before serving traffic.
var Default = NewRegistry()

// NewRegistry returns a registry with application/json registered on both
// sides.
func NewRegistry() *Registry {
	reg := &Registry{
		decoders: make(map[string]DecoderFunc),
		encoders: make(map[string]EncoderFunc),
	}

	reg.RegisterDecoder("application/json", decodeJSON)
	reg.RegisterEncoder("application/json", encodeJSON)

	return reg
}

// RegisterDecoder binds a decoder to a Content-Type header value,
// replacing any previous binding.
func (reg *Registry) RegisterDecoder(contentType string, dec DecoderFunc) {
	reg.decoders[contentType] = dec
}

// RegisterEncoder binds an encoder to a MIME type, replacing any previous
// binding.
func (reg *Registry) RegisterEncoder(mediaType string, enc EncoderFunc) {
	reg.encoders[mediaType] = enc
}

// RemoveDecoder deletes a decoder binding.
func (reg *Registry) RemoveDecoder(contentType string) {
	delete(reg.decoders, contentType)
}

// RemoveEncoder deletes an encoder binding.
func (reg *Registry) RemoveEncoder(mediaType string) {
	delete(reg.encoders, mediaType)
}

// DecoderTypes returns the registered Content-Type values in sorted order.
func (reg *Registry) DecoderTypes() []string {
	return sortedKeys(reg.decoders)
}

// EncoderTypes returns the registered MIME types in sorted order.
func (reg *Registry) EncoderTypes() []string {
	return sortedKeys(reg.encoders)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func decodeJSON(data string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func encodeJSON(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// callDecoder invokes a decoder with panic containment.
func callDecoder(dec DecoderFunc, data string) (fields map[string]any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			fields, err = nil, panicError(rec)
		}
	}()

	return dec(data)
}

// callEncoder invokes an encoder with panic containment.
func callEncoder(enc EncoderFunc, v any) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = "", panicError(rec)
		}
	}()

	return enc(v)
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}
