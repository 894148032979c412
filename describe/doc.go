// Package describe builds serializable descriptions of a route table and
// serves them over the table itself.
//
// A Document lists the table's route keys in match order, split into path
// template and method, together with the content types the configured
// registry can decode and encode. Handle registers endpoints that serve the
// document as JSON, as YAML, and content-negotiated at the base path:
//
//	table := dispatch.NewRouteTable()
//	table.Handle("/users/{id:uuid}#get", getUser)
//
//	spec := describe.New(describe.Info{Title: "users", Version: "1.2.0"}, nil)
//	spec.Handle(table, "/describe", nil)
//
//	d := dispatch.MustCompile(table, nil)
//
// The document is built once on first request and cached; it reflects every
// route present in the table at that moment, including the description
// endpoints themselves.
package describe
