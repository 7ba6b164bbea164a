package analyze

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// PatternCache memoizes ParsePattern across loads. The watch command keeps
// one for its lifetime; patterns that stop being used expire.
//
// A nil *PatternCache is valid and parses every time.
type PatternCache struct {
	entries *cache.Cache
}

type patternEntry struct {
	info PatternInfo
	err  error
}

// NewPatternCache returns a cache whose entries expire ttl after their last use.
func NewPatternCache(ttl time.Duration) *PatternCache {
	return &PatternCache{entries: cache.New(ttl, 2*ttl)}
}

// Parse returns the result of ParsePattern(expr), reusing an earlier one.
func (c *PatternCache) Parse(expr string) (PatternInfo, error) {
	if c == nil {
		return ParsePattern(expr)
	}

	if v, ok := c.entries.Get(expr); ok {
		c.entries.SetDefault(expr, v)

		e := v.(patternEntry)

		return e.info, e.err
	}

	info, err := ParsePattern(expr)
	c.entries.SetDefault(expr, patternEntry{info: info, err: err})

	return info, err
}

// Len reports the number of cached patterns, expired or not.
func (c *PatternCache) Len() int {
	if c == nil {
		return 0
	}

	return c.entries.ItemCount()
}
