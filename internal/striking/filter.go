package striking

import "strings"

// FilterRange keeps rows whose average position lies in [minPos, maxPos].
// Rows without a usable position are dropped.
func FilterRange(rows []joinedRow, minPos, maxPos int) []joinedRow {
	lo, hi := float64(minPos), float64(maxPos)
	out := make([]joinedRow, 0, len(rows))
	for _, r := range rows {
		p := r.query.AveragePosition
		if p == nil || *p < lo || *p > hi {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ParseExclusions splits a comma-separated exclusion list into trimmed,
// lower-cased terms, dropping empty entries
func ParseExclusions(raw string) []string {
	var terms []string
	for _, part := range strings.Split(raw, ",") {
		term := strings.ToLower(strings.TrimSpace(part))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// FilterExclusions drops rows whose keyword contains any term as a
// case-insensitive substring. terms must already be lower-cased.
func FilterExclusions(rows []joinedRow, terms []string) []joinedRow {
	if len(terms) == 0 {
		return rows
	}
	out := make([]joinedRow, 0, len(rows))
	for _, r := range rows {
		if !containsAny(strings.ToLower(r.kw.Keyword), terms) {
			out = append(out, r)
		}
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
