// Package dispatchhandlers provides middleware for dispatch handlers.
//
// The dispatcher itself applies no middleware; handlers are wrapped before
// they enter the route table:
//
//	handler := dispatchhandlers.Wrap(hello,
//		dispatchhandlers.RequestIDMiddleware(dispatchhandlers.RequestIDConfig{}),
//		dispatchhandlers.LoggingMiddleware(dispatchhandlers.LoggingConfig{}),
//	)
//
//	table := dispatch.NewRouteTable().Handle("/hello#get", handler)
//
// Each middleware is configured through its config struct or functional
// options and validates its configuration at construction time, returning
// an error rather than failing per request.
//
// Middleware communicates with handlers through Context.Meta; the Meta*
// constants name the keys this package populates.
package dispatchhandlers
