package dispatchhandlers

import (
	"github.com/hashmux/hashmux/dispatch"
)

// Wrap applies middleware to a handler. The first middleware is the
// outermost layer: Wrap(h, a, b) runs a before b before h.
func Wrap(h dispatch.Handler, mws ...dispatch.Middleware) dispatch.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
