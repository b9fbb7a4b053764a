package rex

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// cacheKey identifies one compiled artifact: pattern text, normalized
// configuration and engine override, compared by value.
type cacheKey struct {
	pattern  string
	cfg      Config
	override Engine
}

// flightKey renders the key as a string for singleflight grouping.
func (k cacheKey) flightKey() string {
	var b strings.Builder
	b.Grow(len(k.pattern) + 32)
	b.WriteString(strconv.Itoa(int(k.override)))
	for _, f := range []bool{k.cfg.CaseInsensitive, k.cfg.IgnoreWhitespace, k.cfg.Multiline, k.cfg.UnicodeMode} {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteString(strconv.FormatInt(k.cfg.SizeLimit, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(k.cfg.DFASizeLimit, 10))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(k.cfg.BacktrackLimit))
	b.WriteByte('|')
	b.WriteString(k.pattern)
	return b.String()
}

// Cache is a concurrent compilation cache keyed by (pattern, config,
// override). It guarantees at most one compilation per distinct key:
// concurrent requesters for a new key share a single in-flight compile
// and all receive the same Pattern. Distinct keys compile independently
// and in parallel. Failed compilations are never cached, so a later call
// with the same key retries.
//
// The zero maxSize means the cache grows without bound for the process
// lifetime. A positive maxSize bounds it with FIFO eviction; the
// compile-once guarantee holds for any entry still retained.
type Cache struct {
	entries sync.Map // cacheKey -> *Pattern, lock-free reads
	flight  singleflight.Group

	orderMu sync.Mutex // protects order for eviction and Len
	order   []cacheKey // insertion order, FIFO eviction
	maxSize int

	// compileFn is swapped in tests to count compilations.
	compileFn func(pattern string, cfg Config, override Engine) (*Pattern, error)
}

// NewCache creates a compilation cache. maxSize 0 means unbounded.
func NewCache(maxSize int) *Cache {
	return &Cache{maxSize: maxSize, compileFn: compile}
}

// GetOrCompile returns the cached Pattern for (pattern, config, override),
// compiling and publishing it first if absent. A nil config means
// defaults. Pass EngineAuto for tiered selection.
func (c *Cache) GetOrCompile(pattern string, config *Config, override Engine) (*Pattern, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	key := cacheKey{pattern: pattern, cfg: cfg.withDefaults(), override: override}

	// Fast path: lock-free lookup.
	if p, ok := c.entries.Load(key); ok {
		return p.(*Pattern), nil
	}

	// Slow path: at most one goroutine compiles a given key; the rest
	// block on the shared flight and receive the same result. Only a
	// successful compile is published.
	v, err, _ := c.flight.Do(key.flightKey(), func() (any, error) {
		if p, ok := c.entries.Load(key); ok {
			return p, nil
		}
		p, err := c.compileFn(pattern, key.cfg, override)
		if err != nil {
			return nil, err
		}
		c.store(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Pattern), nil
}

// store publishes a fully constructed Pattern and applies FIFO eviction
// when the cache is bounded.
func (c *Cache) store(key cacheKey, p *Pattern) {
	c.entries.Store(key, p)

	c.orderMu.Lock()
	c.order = append(c.order, key)
	if c.maxSize > 0 {
		for len(c.order) > c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			c.entries.Delete(oldest)
		}
	}
	c.orderMu.Unlock()
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.orderMu.Lock()
	n := len(c.order)
	c.orderMu.Unlock()
	return n
}

// Clear removes all cached patterns.
func (c *Cache) Clear() {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	for _, key := range c.order {
		c.entries.Delete(key)
	}
	c.order = c.order[:0]
}
