package dispatch

import (
	"net/http"
	"net/url"
)

// Handler processes one dispatched request and returns its response. A
// handler may instead return an error; the dispatcher converts it into the
// uniform 500 fault response.
type Handler func(*Context) (*Response, error)

// Context carries the per-request values a handler receives. Every field is
// populated at dispatch time except Meta, which starts empty and exists for
// middleware to pass values to the wrapped handler.
type Context struct {
	// Request is the raw incoming request.
	Request *http.Request

	// URL is the parsed request URL, shared with Request.URL.
	URL *url.URL

	// Params holds the named path variables extracted by the matched
	// pattern. It is empty, never nil, on the fallback path.
	Params map[string]string

	// Query holds the decoded query string, one value per key with the
	// last value winning.
	Query map[string]string

	// Meta is scratch space reserved for middleware. The dispatcher
	// allocates it fresh and empty for every request.
	Meta map[string]any
}

// Middleware decorates a handler. The dispatcher applies no middleware of
// its own; wrap handlers before they enter the route table.
type Middleware func(Handler) Handler
