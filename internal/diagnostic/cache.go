package diagnostic

import (
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/statline/internal/host"
)

// SummaryCache maps entity handles to precomputed diagnostic summary
// strings. Entries change only through Update and Evict; Get never
// computes anything. Reads and writes use the backing store's
// reader-writer locking, so the cache stays correct under hosts that
// deliver events off-thread.
type SummaryCache struct {
	store   *gocache.Cache
	ed      host.Editor
	src     Source
	markup  host.Markup
	symbols map[Severity]string
}

// CacheOption configures a SummaryCache.
type CacheOption func(*SummaryCache)

// WithSymbols overrides the per-severity summary symbols. Severities
// missing from the map keep their defaults.
func WithSymbols(symbols map[Severity]string) CacheOption {
	return func(c *SummaryCache) {
		for sev, sym := range symbols {
			if sev.Known() && sym != "" {
				c.symbols[sev] = sym
			}
		}
	}
}

// NewSummaryCache creates an empty cache. Entries never expire; explicit
// events are the only invalidation path.
func NewSummaryCache(ed host.Editor, src Source, markup host.Markup, opts ...CacheOption) *SummaryCache {
	c := &SummaryCache{
		store:   gocache.New(gocache.NoExpiration, 0),
		ed:      ed,
		src:     src,
		markup:  markup,
		symbols: DefaultSymbols(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update recomputes and stores the summary for an entity from its current
// diagnostic list. A stale or invalid handle is a no-op.
func (c *SummaryCache) Update(id host.EntityID) {
	if !id.Valid() || !c.ed.EntityValid(id) {
		return
	}

	diags := host.Query("diagnostics", nil, func() ([]Diagnostic, error) {
		return c.src.Diagnostics(id)
	})

	c.store.Set(cacheKey(id), c.build(diags), gocache.NoExpiration)
}

// Get returns the stored summary, or the empty string when no entry
// exists. It never triggers computation.
func (c *SummaryCache) Get(id host.EntityID) string {
	v, ok := c.store.Get(cacheKey(id))
	if !ok {
		return ""
	}
	return v.(string)
}

// Evict removes any stored entry for the entity. Idempotent.
func (c *SummaryCache) Evict(id host.EntityID) {
	c.store.Delete(cacheKey(id))
}

// Clear removes every entry. Exists for tests; production code only ever
// evicts per entity.
func (c *SummaryCache) Clear() {
	c.store.Flush()
}

// build renders the summary string: per known severity in fixed order, a
// highlight-tagged " <symbol> <count> " fragment, then a single reset
// marker. No known diagnostics means the empty string.
func (c *SummaryCache) build(diags []Diagnostic) string {
	var counts [SeverityHint + 1]int
	for _, d := range diags {
		if d.Severity.Known() {
			counts[d.Severity]++
		}
	}

	var b strings.Builder
	for _, sev := range Severities {
		n := counts[sev]
		if n == 0 {
			continue
		}
		b.WriteString(c.markup.Highlight(sev.Role().Group()))
		b.WriteString(" ")
		b.WriteString(c.symbols[sev])
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(n))
		b.WriteString(" ")
	}

	if b.Len() == 0 {
		return ""
	}
	b.WriteString(c.markup.Reset())
	return b.String()
}

func cacheKey(id host.EntityID) string {
	return strconv.Itoa(int(id))
}
