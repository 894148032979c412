package pattern

import (
	"regexp"
	"sync"
)

// patternCache caches compiled patterns keyed by Template. Dispatch tables
// compile a bounded set of templates per process, so the cache grows to that
// set and stays there. Failed compilations are not cached.
var patternCache sync.Map

// regexpCache deduplicates compiled expressions between patterns whose
// templates differ only in discriminator.
var regexpCache sync.Map

func compileRegexp(expr string) (*regexp.Regexp, error) {
	if cached, ok := regexpCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(expr, compiled)
	return actual.(*regexp.Regexp), nil
}
