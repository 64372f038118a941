// Package memory holds map-backed repositories used for local runs and
// tests. They honour the same contracts as the MongoDB repositories.
package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/fmcg-app/catalog-api/internal/core/query"
)

func newID() string {
	return uuid.NewString()
}

// sortRecords orders recs stably by the given key extractor. Records that
// compare equal keep their insertion order.
func sortRecords[T any](recs []T, s *query.Sort, less func(a, b T, field string) bool) {
	if s == nil {
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if s.Direction == query.Desc {
			return less(recs[j], recs[i], s.Field)
		}
		return less(recs[i], recs[j], s.Field)
	})
}

// window returns the slice of recs selected by p.
func window[T any](recs []T, p *query.Page) []T {
	if p == nil {
		return recs
	}
	start := p.Skip()
	if start < 0 || start >= len(recs) {
		return recs[:0]
	}
	end := min(start+p.Limit, len(recs))
	return recs[start:end]
}
