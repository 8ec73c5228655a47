package striking

import (
	"strconv"
)

type kwFixture struct {
	keyword    string
	volume     string
	difficulty string
	intents    string
}

type pageFixture struct {
	query       string
	page        string
	impressions string
}

func queryTable(rows map[string]float64, order ...string) *Table {
	records := make([][]string, 0, len(order))
	for _, q := range order {
		records = append(records, []string{q, strconv.FormatFloat(rows[q], 'f', -1, 64)})
	}
	return NewTable(TableQueries, []string{ColTopQueries, "Clicks", ColPosition}, reorder(records))
}

// reorder inserts an unrelated Clicks column to prove lookup is by name
func reorder(records [][]string) [][]string {
	out := make([][]string, len(records))
	for i, r := range records {
		out[i] = []string{r[0], "0", r[1]}
	}
	return out
}

func keywordTable(rows ...kwFixture) *Table {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.keyword, r.volume, r.difficulty, r.intents})
	}
	return NewTable(TableKeywords, []string{ColKeyword, ColVolume, ColDifficulty, ColIntents}, records)
}

func pageTable(rows ...pageFixture) *Table {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.query, r.page, r.impressions})
	}
	return NewTable(TableCannibalisation, []string{ColQuery, ColLandingPage, ColImpressions}, records)
}

func shoesInputs(position float64) Inputs {
	return Inputs{
		Queries:         queryTable(map[string]float64{"shoes": position}, "shoes"),
		Keywords:        keywordTable(kwFixture{"shoes", "1000", "40", "commercial"}),
		Cannibalisation: pageTable(pageFixture{"shoes", "/shoes", "500"}),
	}
}
