package pattern

// defaultVarPattern matches a single path segment.
const defaultVarPattern = "[^/]+"

// patternMacros maps macro names usable in {name:macro} variables to the
// regexp fragments they expand to.
var patternMacros = map[string]string{
	// RFC 4122: 8-4-4-4-12 hex digits.
	"uuid": `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,

	// Unsigned integer
	"int": `[0-9]+`,

	// Decimal number with optional fraction
	"float": `[0-9]+(?:\.[0-9]+)?`,

	// URL-safe slug (lowercase letters, digits, hyphens)
	"slug": `[a-z0-9]+(?:-[a-z0-9]+)*`,

	// Alphabetic characters only
	"alpha": `[a-zA-Z]+`,

	// Alphanumeric characters
	"alphanum": `[a-zA-Z0-9]+`,

	// ISO 8601 date (YYYY-MM-DD)
	"date": `[0-9]{4}-[0-9]{2}-[0-9]{2}`,

	// Hexadecimal string
	"hex": `[0-9a-fA-F]+`,

	// RFC 1035/1123: labels 1-63 chars ending in a letter-only TLD.
	"domain": `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}`,
}

// expandMacro resolves a macro name to its regexp fragment. Names that are
// not known macros are returned unchanged and treated as raw regular
// expressions.
func expandMacro(pattern string) string {
	if expanded, ok := patternMacros[pattern]; ok {
		return expanded
	}
	return pattern
}
