package striking

import "strikingdistance/pkg/contracts/domain"

// joinedRow is one row of the three-way inner join
type joinedRow struct {
	query domain.QueryPerformance
	kw    domain.KeywordMetrics
	page  domain.CannibalisationRow
}

// Join inner-joins queries to keywords on query=keyword, then to landing
// pages on query=query. Left rows keep their input order and expand into
// their right-hand matches in right-table order. Keys match exactly.
func Join(queries []domain.QueryPerformance, keywords []domain.KeywordMetrics, pages []domain.CannibalisationRow) []joinedRow {
	kwIdx := make(map[string][]int, len(keywords))
	for i, kw := range keywords {
		kwIdx[kw.Keyword] = append(kwIdx[kw.Keyword], i)
	}
	pageIdx := make(map[string][]int, len(pages))
	for i, p := range pages {
		pageIdx[p.Query] = append(pageIdx[p.Query], i)
	}

	var out []joinedRow
	for _, q := range queries {
		kws, ok := kwIdx[q.Query]
		if !ok {
			continue
		}
		pgs, ok := pageIdx[q.Query]
		if !ok {
			continue
		}
		for _, ki := range kws {
			for _, pi := range pgs {
				out = append(out, joinedRow{query: q, kw: keywords[ki], page: pages[pi]})
			}
		}
	}
	return out
}
