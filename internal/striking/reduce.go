package striking

import "strikingdistance/pkg/contracts/domain"

// ReduceCannibalisation keeps one row per query: the one with the most
// impressions. Ties keep the earliest row, and a nil impressions value loses
// to any reported value. Output follows first appearance of each query.
func ReduceCannibalisation(rows []domain.CannibalisationRow) []domain.CannibalisationRow {
	best := make(map[string]int, len(rows))
	order := make([]string, 0, len(rows))
	for i, row := range rows {
		j, seen := best[row.Query]
		if !seen {
			best[row.Query] = i
			order = append(order, row.Query)
			continue
		}
		if beats(row.Impressions, rows[j].Impressions) {
			best[row.Query] = i
		}
	}

	reduced := make([]domain.CannibalisationRow, 0, len(order))
	for _, q := range order {
		reduced = append(reduced, rows[best[q]])
	}
	return reduced
}

// beats reports whether candidate is strictly greater than current
func beats(candidate, current *float64) bool {
	if candidate == nil {
		return false
	}
	if current == nil {
		return true
	}
	return *candidate > *current
}
