package striking

import (
	"math"
	"strconv"
	"strings"

	"strikingdistance/pkg/contracts/domain"
)

// ParseNumber parses a numeric cell. Thousands separators and surrounding
// whitespace are ignored. Empty, non-numeric, NaN and infinite values return
// nil; malformed numerics are treated as missing, never as a failure.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseNonNegative drops negative counts
func parseNonNegative(s string) *float64 {
	v := ParseNumber(s)
	if v == nil || *v < 0 {
		return nil
	}
	return v
}

// parseDifficulty keeps difficulty inside its [0, 100] scale
func parseDifficulty(s string) *float64 {
	v := ParseNumber(s)
	if v == nil || *v < 0 || *v > 100 {
		return nil
	}
	return v
}

// DecodeQueryPerformance reads the search console table
func DecodeQueryPerformance(t *Table) []domain.QueryPerformance {
	qi, pi := t.Index(ColTopQueries), t.Index(ColPosition)
	rows := make([]domain.QueryPerformance, 0, t.Len())
	for i := range t.Records {
		rows = append(rows, domain.QueryPerformance{
			Query:           t.cell(i, qi),
			AveragePosition: ParseNumber(t.cell(i, pi)),
		})
	}
	return rows
}

// DecodeKeywordMetrics reads the keyword volume/difficulty table
func DecodeKeywordMetrics(t *Table) []domain.KeywordMetrics {
	ki, vi, di, ii := t.Index(ColKeyword), t.Index(ColVolume), t.Index(ColDifficulty), t.Index(ColIntents)
	rows := make([]domain.KeywordMetrics, 0, t.Len())
	for i := range t.Records {
		rows = append(rows, domain.KeywordMetrics{
			Keyword:    t.cell(i, ki),
			Volume:     parseNonNegative(t.cell(i, vi)),
			Difficulty: parseDifficulty(t.cell(i, di)),
			Intents:    t.cell(i, ii),
		})
	}
	return rows
}

// DecodeCannibalisation reads the landing page export
func DecodeCannibalisation(t *Table) []domain.CannibalisationRow {
	qi, li, ii := t.Index(ColQuery), t.Index(ColLandingPage), t.Index(ColImpressions)
	rows := make([]domain.CannibalisationRow, 0, t.Len())
	for i := range t.Records {
		rows = append(rows, domain.CannibalisationRow{
			Query:       t.cell(i, qi),
			LandingPage: t.cell(i, li),
			Impressions: parseNonNegative(t.cell(i, ii)),
		})
	}
	return rows
}
