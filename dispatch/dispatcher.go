package dispatch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashmux/hashmux/form"
	"github.com/hashmux/hashmux/pattern"
)

// ErrNilResponse reports a handler that returned neither a response nor an
// error.
var ErrNilResponse = errors.New("handler returned no response")

// RouteInfo describes one compiled route.
type RouteInfo struct {
	Key    string `json:"key" yaml:"key"`
	Path   string `json:"path" yaml:"path"`
	Method string `json:"method" yaml:"method"`
}

type compiledRoute struct {
	key     string
	pattern *pattern.Pattern
	handler Handler
}

// Dispatcher matches requests against a compiled route list and runs the
// winning handler. It is immutable after Compile and safe for concurrent
// use.
type Dispatcher struct {
	routes   []compiledRoute
	fallback Handler
}

// Compile turns a route table into a dispatcher. Each key is compiled to a
// pattern over its path template and method discriminator, in declaration
// order. A nil fallback installs the built-in 404 handler.
func Compile(table *RouteTable, fallback Handler) (*Dispatcher, error) {
	if table == nil {
		table = NewRouteTable()
	}

	routes := make([]compiledRoute, 0, table.Len())

	for _, entry := range table.entries {
		compiled, err := pattern.Compile(splitKey(entry.key))
		if err != nil {
			return nil, fmt.Errorf("dispatch: route %q: %w", entry.key, err)
		}

		routes = append(routes, compiledRoute{
			key:     entry.key,
			pattern: compiled,
			handler: entry.handler,
		})
	}

	if fallback == nil {
		fallback = notFound
	}

	return &Dispatcher{
		routes:   routes,
		fallback: fallback,
	}, nil
}

// MustCompile is like Compile but panics if any route key is invalid. It
// simplifies safe initialization of global dispatchers.
func MustCompile(table *RouteTable, fallback Handler) *Dispatcher {
	d, err := Compile(table, fallback)
	if err != nil {
		panic(err)
	}
	return d
}

// Dispatch resolves one request to a response. The probe string is the
// request URL plus "#" plus the lower-cased method; the first route whose
// pattern matches it wins, in declaration order. When nothing matches, the
// fallback runs with empty Params. Dispatch never panics and never returns
// nil: every fault becomes the 500 response.
func (d *Dispatcher) Dispatch(r *http.Request) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = internalError(panicError(rec))
		}
	}()

	probe := r.URL.String() + "#" + strings.ToLower(r.Method)

	// String input never fails the decode; malformed pairs are dropped.
	query, _ := form.Decode(r.URL.RawQuery)

	for _, route := range d.routes {
		if !route.pattern.Match(probe) {
			continue
		}

		params := route.pattern.Vars(probe)
		if params == nil {
			params = map[string]string{}
		}

		return run(route.handler, &Context{
			Request: r,
			URL:     r.URL,
			Params:  params,
			Query:   query,
			Meta:    map[string]any{},
		})
	}

	return run(d.fallback, &Context{
		Request: r,
		URL:     r.URL,
		Params:  map[string]string{},
		Query:   query,
		Meta:    map[string]any{},
	})
}

// ServeHTTP bridges the dispatcher into net/http. The response's StatusText
// is dropped here; the protocol layer writes its own reason phrases.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.Dispatch(r).Write(w)
}

// Routes returns the compiled routes in declaration order.
func (d *Dispatcher) Routes() []RouteInfo {
	infos := make([]RouteInfo, len(d.routes))

	for i, route := range d.routes {
		tpl := route.pattern.Template()
		infos[i] = RouteInfo{
			Key:    route.key,
			Path:   tpl.Path,
			Method: tpl.Hash,
		}
	}

	return infos
}

// run invokes a handler with full containment: an error return, a nil
// response, or a panic all collapse into the 500 fault response.
func run(h Handler, ctx *Context) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = internalError(panicError(rec))
		}
	}()

	resp, err := h(ctx)
	if err != nil {
		return internalError(err)
	}
	if resp == nil {
		return internalError(ErrNilResponse)
	}

	return resp
}

// notFound is the built-in fallback.
func notFound(*Context) (*Response, error) {
	return Text(http.StatusNotFound, "Page not found"), nil
}

// internalError converts a contained fault into the uniform 500 response.
func internalError(err error) *Response {
	resp := Text(http.StatusInternalServerError, err.Error())
	resp.StatusText = "internal server error"
	return resp
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}
