package pattern

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Wildcard is the discriminator value that matches any fragment.
const Wildcard = "*"

// Template describes a pattern before compilation.
type Template struct {
	// Path is the path template. It may contain literal text, named
	// variables in braces, and * wildcards.
	Path string

	// Hash is the discriminator matched against the candidate's fragment.
	// The value "*" matches any fragment; any other value must equal the
	// fragment exactly.
	Hash string
}

// Pattern is a compiled Template. A Pattern is immutable and safe for
// concurrent use by multiple goroutines.
type Pattern struct {
	tpl    Template
	regexp *regexp.Regexp
	varsN  []string
}

// Compile parses the template and returns a Pattern. Compiled patterns are
// cached process-wide by template, so repeated compilation of the same
// template is cheap and returns a shared Pattern.
func Compile(t Template) (*Pattern, error) {
	if v, ok := patternCache.Load(t); ok {
		return v.(*Pattern), nil
	}

	p, err := compile(t)
	if err != nil {
		return nil, err
	}

	actual, _ := patternCache.LoadOrStore(t, p)
	return actual.(*Pattern), nil
}

// MustCompile is like Compile but panics if the template cannot be compiled.
// It simplifies safe initialization of global variables holding patterns.
func MustCompile(t Template) *Pattern {
	p, err := Compile(t)
	if err != nil {
		panic(err)
	}
	return p
}

func compile(t Template) (*Pattern, error) {
	idxs, err := braceIndices(t.Path)
	if err != nil {
		return nil, err
	}

	var (
		pattern bytes.Buffer
		varsN   = make([]string, len(idxs)/2)
		end     int
	)

	pattern.WriteByte('^')

	for i := 0; i < len(idxs); i += 2 {
		raw := t.Path[end:idxs[i]]
		end = idxs[i+1]

		parts := strings.SplitN(t.Path[idxs[i]+1:end-1], ":", 2)
		name := parts[0]

		patt := defaultVarPattern
		if len(parts) == 2 {
			patt = expandMacro(parts[1])
		}

		if name == "" {
			return nil, fmt.Errorf("pattern: missing name in %q of %q", t.Path[idxs[i]:end], t.Path)
		}

		fmt.Fprintf(&pattern, "%s(%s)", quoteLiteral(raw), patt)

		varsN[i/2] = name
	}

	raw := t.Path[end:]
	pattern.WriteString(quoteLiteral(raw))
	pattern.WriteByte('$')

	if err := checkDuplicateVars(varsN); err != nil {
		return nil, err
	}

	reg, err := compileRegexp(pattern.String())
	if err != nil {
		return nil, err
	}

	return &Pattern{
		tpl:    t,
		regexp: reg,
		varsN:  varsN,
	}, nil
}

// Match reports whether the candidate matches the pattern. The candidate is
// parsed as a URL; its path is tested against the path template and its
// fragment against the discriminator. Unparseable candidates never match.
func (p *Pattern) Match(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	if !p.matchFragment(u.Fragment) {
		return false
	}

	return p.regexp.MatchString(u.Path)
}

// Vars extracts the named path variables from the candidate. It returns nil
// when the candidate does not match. The discriminator contributes no
// variables.
func (p *Pattern) Vars(candidate string) map[string]string {
	u, err := url.Parse(candidate)
	if err != nil {
		return nil
	}

	if !p.matchFragment(u.Fragment) {
		return nil
	}

	matches := p.regexp.FindStringSubmatch(u.Path)
	if matches == nil {
		return nil
	}

	vars := make(map[string]string, len(p.varsN))
	for i, name := range p.varsN {
		vars[name] = matches[i+1]
	}

	return vars
}

// Template returns the template the pattern was compiled from.
func (p *Pattern) Template() Template {
	return p.tpl
}

// String returns the template in key form: the path, followed by "#" and
// the discriminator unless the discriminator is the wildcard.
func (p *Pattern) String() string {
	if p.tpl.Hash == Wildcard {
		return p.tpl.Path
	}
	return p.tpl.Path + "#" + p.tpl.Hash
}

func (p *Pattern) matchFragment(fragment string) bool {
	if p.tpl.Hash == Wildcard {
		return true
	}
	return p.tpl.Hash == fragment
}

// quoteLiteral escapes literal template text for embedding in a regular
// expression, expanding * wildcards to match any run of characters.
func quoteLiteral(raw string) string {
	if !strings.Contains(raw, "*") {
		return regexp.QuoteMeta(raw)
	}

	parts := strings.Split(raw, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	return strings.Join(parts, ".*")
}

// braceIndices returns the first level curly brace indices from a string.
// It returns an error in case of unbalanced braces.
func braceIndices(s string) ([]int, error) {
	var level, idx int
	var idxs []int

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idx = i
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, idx, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("pattern: unbalanced braces in %q", s)
			}
		}
	}

	if level != 0 {
		return nil, fmt.Errorf("pattern: unbalanced braces in %q", s)
	}

	return idxs, nil
}

func checkDuplicateVars(varsN []string) error {
	seen := make(map[string]struct{}, len(varsN))

	for _, name := range varsN {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("pattern: duplicate variable %q", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}
