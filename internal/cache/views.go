package cache

import (
	"strconv"
	"time"

	"expensereport/internal/analytics"
	"expensereport/internal/core"
)

const viewsMaxEntries = 64

type projectionEntry struct {
	projection analytics.Projection
	err        error
}

// Views memoizes derived dashboard results. Keys embed the store version, so
// any mutation makes older entries unreachable and they age out by TTL.
type Views struct {
	summaries   *LRUCache[analytics.Summary]
	projections *LRUCache[projectionEntry]
}

// NewViews creates the caches and registers them with m when m is not nil.
func NewViews(ttl time.Duration, m *Manager) *Views {
	v := &Views{
		summaries:   NewLRUCache[analytics.Summary](viewsMaxEntries, ttl),
		projections: NewLRUCache[projectionEntry](viewsMaxEntries, ttl),
	}
	if m != nil {
		m.Register(v.summaries)
		m.Register(v.projections)
	}
	return v
}

func viewKey(version uint64, c analytics.Criteria) string {
	return strconv.FormatUint(version, 10) + "|" + c.Key()
}

// Summary returns the cached summary for (version, criteria), computing it on a miss.
func (v *Views) Summary(version uint64, c analytics.Criteria, compute func() analytics.Summary) (analytics.Summary, bool) {
	return v.summaries.GetOrCompute(viewKey(version, c), compute)
}

// Projection is Summary for projections; the budget is part of the key.
func (v *Views) Projection(version uint64, c analytics.Criteria, budget core.Money, compute func() (analytics.Projection, error)) (analytics.Projection, bool, error) {
	key := viewKey(version, c) + "|" + strconv.FormatInt(budget.Cents, 10)
	e, hit := v.projections.GetOrCompute(key, func() projectionEntry {
		p, err := compute()
		return projectionEntry{projection: p, err: err}
	})
	return e.projection, hit, e.err
}

// Size is the number of cached entries across both views.
func (v *Views) Size() int {
	return v.summaries.Size() + v.projections.Size()
}
