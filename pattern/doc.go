// Package pattern implements the template matching primitive used by the
// dispatch package.
//
// A Template pairs a path template with a discriminator string. Compiling a
// template yields a Pattern that can test candidate strings and extract
// named path variables from them. Candidates are interpreted as URLs per
// RFC 3986: the path component is matched against the path template and the
// fragment component against the discriminator. Query strings are ignored.
//
//	p := pattern.MustCompile(pattern.Template{Path: "/users/{id:int}", Hash: "get"})
//	p.Match("/users/42#get")          // true
//	p.Match("/users/42?x=1#get")      // true, query ignored
//	p.Match("/users/42#post")         // false
//	p.Vars("/users/42")               // map[id:42]
//
// # Path Templates
//
// Path templates contain literal text, named variables in braces, and *
// wildcards:
//
//	/articles/{category}/{id:[0-9]+}
//	/files/*
//
// A variable matches a single path segment unless it carries an explicit
// regular expression or macro after the colon.
//
// # Macros
//
// Instead of full regular expressions, variables can use named macros with
// the {name:macro} syntax:
//
//	/users/{id:uuid}
//	/articles/{page:int}
//
// Available macros:
//
//	uuid     - RFC 4122 UUID
//	int      - unsigned integer
//	float    - decimal number
//	slug     - URL-safe slug
//	alpha    - alphabetic characters
//	alphanum - alphanumeric characters
//	date     - ISO 8601 date
//	hex      - hexadecimal string
//	domain   - domain name per RFC 1123
//
// Names that are not known macros are treated as raw regular expressions.
//
// # Discriminators
//
// The discriminator is matched against the candidate's fragment. The value
// "*" matches any fragment, including none; any other value must equal the
// fragment exactly. Fragments are not real URL components of HTTP requests;
// callers use them as an auxiliary matching channel.
package pattern
