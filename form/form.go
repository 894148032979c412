// Package form converts between query strings and flat string maps.
//
// Decoding collapses repeated keys to their last value and drops malformed
// pairs instead of failing the whole parse. Encoding emits keys in sorted
// order and silently skips values that are not strings, so a decode of an
// encoded map always round-trips the string entries.
package form

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnsupportedInput is returned by Decode for input it cannot interpret
// as a query.
var ErrUnsupportedInput = errors.New("form: unsupported input type")

// Decode converts a query into a flat map. It accepts a raw query string
// (with or without a leading "?"), url.Values, map[string][]string, or
// map[string]string. Any other input type is an error. When a key repeats,
// the last value wins.
func Decode(input any) (map[string]string, error) {
	switch v := input.(type) {
	case string:
		return decodeString(v), nil
	case url.Values:
		return flatten(v), nil
	case map[string][]string:
		return flatten(v), nil
	case map[string]string:
		out := make(map[string]string, len(v))
		for key, value := range v {
			out[key] = value
		}
		return out, nil
	default:
		return nil, ErrUnsupportedInput
	}
}

// Encode serializes the string-valued entries of values into a query string
// with keys in sorted order. Entries whose value is not a string are
// skipped.
func Encode(values map[string]any) string {
	form := make(url.Values, len(values))

	for key, value := range values {
		str, ok := value.(string)
		if !ok {
			continue
		}
		form.Set(key, str)
	}

	return form.Encode()
}

// EncodeStrings serializes a flat string map into a query string with keys
// in sorted order.
func EncodeStrings(values map[string]string) string {
	form := make(url.Values, len(values))

	for key, value := range values {
		form.Set(key, value)
	}

	return form.Encode()
}

func decodeString(query string) map[string]string {
	query = strings.TrimPrefix(query, "?")

	// url.ParseQuery still returns every pair it could parse alongside the
	// error, so malformed pairs are dropped and the rest survive.
	values, _ := url.ParseQuery(query)

	return flatten(values)
}

func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))

	for key, vals := range values {
		if len(vals) == 0 {
			out[key] = ""
			continue
		}
		out[key] = vals[len(vals)-1]
	}

	return out
}
