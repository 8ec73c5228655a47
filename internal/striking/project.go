package striking

import (
	"sort"

	"strikingdistance/pkg/contracts/domain"
)

// OutputHeader is the column order of the exported opportunity table
var OutputHeader = []string{
	"Keyword",
	"Landing Page",
	"Average Position",
	"Volume",
	"Difficulty",
	"Opportunity Z-Score",
	"Intents",
}

// Project orders scored rows by z-score, highest first. The sort is stable
// so equal z-scores keep their join order.
func Project(rows []domain.OpportunityRow) []domain.OpportunityRow {
	out := make([]domain.OpportunityRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OpportunityZScore > out[j].OpportunityZScore
	})
	return out
}
