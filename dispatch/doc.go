// Package dispatch compiles a declarative route table into a request
// dispatcher.
//
// Route keys have the form <path-template>[#<method>]. The key is split at
// its last "#": everything before it is a path template in the pattern
// package's DSL, everything after it is an HTTP method matched
// case-insensitively. A key without "#" matches any method.
//
//	table := dispatch.NewRouteTable().
//		Handle("/hello#get", hello).
//		Handle("/users/{id:int}", userAny).
//		Handle("/", index)
//
//	d, err := dispatch.Compile(table, nil)
//
// Matching is strictly first-match-wins in declaration order; no
// specificity reordering happens. Handlers receive a Context and return a
// Response value. The dispatcher contains every fault: a handler error,
// a panic, or a nil response all become a 500 response, so Dispatch never
// panics and never returns nil.
//
// The compiled dispatcher implements http.Handler and can be mounted in any
// net/http server or router.
package dispatch
