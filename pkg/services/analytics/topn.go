package analytics

import (
	"sort"

	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

const topListSize = 5

// rank orders entries descending by metric with a stable ascending-name
// tie-break and keeps the first n.
func rank(entries []domain.RankedEntry, n int) []domain.RankedEntry {
	ranked := make([]domain.RankedEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].Metric.Equal(ranked[j].Metric) {
			return ranked[i].Metric.GreaterThan(ranked[j].Metric)
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
