package dispatch

import (
	"strings"

	"github.com/hashmux/hashmux/pattern"
)

// RouteTable is an insertion-ordered collection of route key to handler
// bindings. Declaration order is the match priority, so the table preserves
// it faithfully. A RouteTable is not safe for concurrent mutation; build it
// fully, then compile.
type RouteTable struct {
	entries []tableEntry
	index   map[string]int
}

type tableEntry struct {
	key     string
	handler Handler
}

// NewRouteTable returns an empty route table.
func NewRouteTable() *RouteTable {
	return &RouteTable{
		index: make(map[string]int),
	}
}

// Handle binds a handler to a route key and returns the table for chaining.
// Re-using a key replaces the previous handler but keeps the key's original
// position in the match order.
func (t *RouteTable) Handle(key string, handler Handler) *RouteTable {
	if pos, ok := t.index[key]; ok {
		t.entries[pos].handler = handler
		return t
	}

	t.index[key] = len(t.entries)
	t.entries = append(t.entries, tableEntry{key: key, handler: handler})

	return t
}

// Len returns the number of distinct route keys in the table.
func (t *RouteTable) Len() int {
	return len(t.entries)
}

// Keys returns the route keys in declaration order.
func (t *RouteTable) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, entry := range t.entries {
		keys[i] = entry.key
	}
	return keys
}

// ParseKey splits a route key into its path template and method
// discriminator, applying the compiler's rule: split at the last "#",
// lower-case the method, and treat a key without "#" as the wildcard
// method "*".
func ParseKey(key string) (path, method string) {
	tpl := splitKey(key)
	return tpl.Path, tpl.Hash
}

// splitKey splits a route key into a pattern template at the last "#".
// The method part is lower-cased; a key without "#" matches any method.
// Path templates may themselves contain earlier "#" characters.
func splitKey(key string) pattern.Template {
	if idx := strings.LastIndex(key, "#"); idx >= 0 {
		return pattern.Template{
			Path: key[:idx],
			Hash: strings.ToLower(key[idx+1:]),
		}
	}

	return pattern.Template{
		Path: key,
		Hash: pattern.Wildcard,
	}
}
