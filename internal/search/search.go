// Package search implements linear substring search over entries with a
// small memo of recent results.
//
// The memo key is (trimmed query, case sensitivity, corpus size). It does not
// see edits that keep the corpus size, so owners of the corpus must call
// Invalidate after every change to it.
package search

import (
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/TK2F/promptvault/internal/models"
)

// DefaultCacheSize bounds the number of memoized queries.
const DefaultCacheSize = 100

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "promptvault_search_cache_lookups_total",
	Help: "Search memo lookups by result",
}, []string{"result"})

type cacheKey struct {
	query         string
	caseSensitive bool
	size          int
}

type Engine struct {
	cache *lru.Cache[cacheKey, []models.Entry]
}

// NewEngine returns an engine memoizing up to size queries. Eviction is by
// insertion order: hits never refresh an entry's position.
func NewEngine(size int) *Engine {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, []models.Entry](size)
	if err != nil {
		panic(err)
	}
	return &Engine{cache: c}
}

// Search returns the entries matching query in their original order. An
// empty or blank query returns entries itself. A positive limit stops the
// scan after that many matches.
func (e *Engine) Search(entries []models.Entry, query string, caseSensitive bool, limit int) []models.Entry {
	q := strings.TrimSpace(query)
	if q == "" {
		return entries
	}

	key := cacheKey{query: q, caseSensitive: caseSensitive, size: len(entries)}
	if hit, ok := e.cache.Peek(key); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		if limit > 0 && len(hit) > limit {
			hit = hit[:limit]
		}
		return slices.Clone(hit)
	}
	cacheLookups.WithLabelValues("miss").Inc()

	res := scan(entries, q, caseSensitive, limit)
	// A scan cut short by limit is not the full answer and is not stored.
	if limit <= 0 || len(res) < limit {
		e.cache.ContainsOrAdd(key, slices.Clone(res))
	}
	return res
}

// Invalidate drops every memoized result.
func (e *Engine) Invalidate() {
	e.cache.Purge()
}

// Len reports the number of memoized queries.
func (e *Engine) Len() int {
	return e.cache.Len()
}

// Search is the unmemoized form of Engine.Search.
func Search(entries []models.Entry, query string, caseSensitive bool, limit int) []models.Entry {
	q := strings.TrimSpace(query)
	if q == "" {
		return entries
	}
	return scan(entries, q, caseSensitive, limit)
}

func scan(entries []models.Entry, q string, caseSensitive bool, limit int) []models.Entry {
	if !caseSensitive {
		q = strings.ToLower(q)
	}
	out := make([]models.Entry, 0)
	for _, en := range entries {
		if match(en, q, caseSensitive) {
			out = append(out, en)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Match reports whether entry contains query in its name, category, tags or
// content. The query is used as given, without trimming.
func Match(entry models.Entry, query string, caseSensitive bool) bool {
	if !caseSensitive {
		query = strings.ToLower(query)
	}
	return match(entry, query, caseSensitive)
}

// match checks the cheap, distinguishing fields before the content body.
// q is already folded when caseSensitive is false.
func match(e models.Entry, q string, caseSensitive bool) bool {
	contains := func(s string) bool {
		if s == "" {
			return false
		}
		if !caseSensitive {
			s = strings.ToLower(s)
		}
		return strings.Contains(s, q)
	}

	if contains(e.Name) || contains(e.Category) {
		return true
	}
	for _, t := range e.Tags {
		if contains(t) {
			return true
		}
	}
	return contains(e.Content)
}
