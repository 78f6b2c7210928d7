package regarray

import (
	"log/slog"
	"sync"
)

// ExpressionCache provides thread-safe caching of compiled expressions
// keyed by their source text. All expressions in one cache share the same
// Options.
//
// Failed compilations are cached too, so a bad grammar is only parsed
// once.
type ExpressionCache struct {
	opts  Options
	cache sync.Map // map[string]*cacheEntry
}

// cacheEntry holds the outcome of compiling one source text.
type cacheEntry struct {
	once sync.Once
	expr *Expression
	err  error
}

// NewExpressionCache creates a new thread-safe expression cache
func NewExpressionCache(opts Options) *ExpressionCache {
	return &ExpressionCache{opts: opts}
}

// Get returns the compiled expression for source, compiling it on first
// use. Compilation happens once per source even under concurrent access.
func (ec *ExpressionCache) Get(source string) (*Expression, error) {
	if v, ok := ec.cache.Load(source); ok {
		entry := v.(*cacheEntry)
		entry.once.Do(func() { ec.compile(source, entry) })
		return entry.expr, entry.err
	}

	actual, _ := ec.cache.LoadOrStore(source, &cacheEntry{})
	entry := actual.(*cacheEntry)
	entry.once.Do(func() { ec.compile(source, entry) })
	return entry.expr, entry.err
}

func (ec *ExpressionCache) compile(source string, entry *cacheEntry) {
	ec.opts.logger().Debug("expression cache miss", slog.String("source", source))
	entry.expr, entry.err = CompileWithOptions(source, ec.opts)
}

// Len returns the number of cached source texts.
func (ec *ExpressionCache) Len() int {
	n := 0
	ec.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Delete removes the entry for source
func (ec *ExpressionCache) Delete(source string) {
	ec.cache.Delete(source)
}

// Clear removes all cache entries
func (ec *ExpressionCache) Clear() {
	ec.cache.Clear()
}

///////////////////////////////////////////////////////////////////////////////
// Package functions
///////////////////////////////////////////////////////////////////////////////

// defaultCache serves the package-level Match. It only knows the
// built-in validators.
var defaultCache = NewExpressionCache(Options{})

// Match compiles source with the built-in validators (once per distinct
// source) and matches seq against it.
//
// Every source that compiles stays cached for the life of the process;
// sources that fail are not kept. Callers with open-ended or untrusted
// grammar text should use Compile or their own ExpressionCache instead.
func Match(source string, seq []any) (bool, error) {
	expr, err := defaultCache.Get(source)
	if err != nil {
		defaultCache.Delete(source)
		return false, err
	}
	return expr.Match(seq)
}
