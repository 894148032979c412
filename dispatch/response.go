package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the value handlers return. It reaches the wire only through
// Write, normally via the dispatcher's ServeHTTP.
type Response struct {
	// StatusCode is the HTTP status. Zero means 200.
	StatusCode int

	// StatusText is the reason phrase attached to the response value.
	// net/http writes its own reason phrases, so Write cannot transmit
	// this field; it stays visible to in-process callers only.
	StatusText string

	Header http.Header
	Body   []byte
}

// NewResponse returns a response with the given status and body and an
// empty header map.
func NewResponse(status int, body []byte) *Response {
	return &Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       body,
	}
}

// Text returns a plain-text response.
func Text(status int, body string) *Response {
	resp := NewResponse(status, []byte(body))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// JSON encodes v and returns an application/json response. The signature
// matches Handler's return values, so handlers can end with
//
//	return dispatch.JSON(http.StatusOK, payload)
func JSON(status int, v any) (*Response, error) {
	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("dispatch: encode json response: %w", err)
	}

	resp := NewResponse(status, buf.Bytes())
	resp.Header.Set("Content-Type", "application/json")

	return resp, nil
}

// WithHeader sets a header and returns the response for chaining.
func (r *Response) WithHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}

// Write transmits the response: headers first, then status (defaulting to
// 200), then the body.
func (r *Response) Write(w http.ResponseWriter) {
	for key, values := range r.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.Body) > 0 {
		_, _ = w.Write(r.Body)
	}
}
