// Package algo has classification and ranking helpers shared by scoring and aggregation.
package algo

import (
	"sort"

	"github.com/huangsam/psicosocial/schema"
)

// RankByHighRisk sorts a copy of rows by their combined alto + muy alto share in
// descending order and returns the top 'limit' rows. Ties keep input order.
func RankByHighRisk(rows []schema.RiskTableRow, limit int) []schema.RiskTableRow {
	ranked := make([]schema.RiskTableRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].HighPct() > ranked[j].HighPct()
	})
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// RankFrequencies sorts a copy of items by count in descending order and
// returns the top 'limit' items. Ties keep input order.
func RankFrequencies(items []schema.FrequencyItem, limit int) []schema.FrequencyItem {
	ranked := make([]schema.FrequencyItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// DedupeByFactor keeps the first row seen for every factor name.
func DedupeByFactor(rows []schema.RiskTableRow) []schema.RiskTableRow {
	seen := make(map[string]struct{}, len(rows))
	out := make([]schema.RiskTableRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.Factor]; ok {
			continue
		}
		seen[r.Factor] = struct{}{}
		out = append(out, r)
	}
	return out
}
