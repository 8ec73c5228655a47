package striking

// Table names used in conditions and logs
const (
	TableQueries         = "QueryPerformance"
	TableKeywords        = "KeywordMetrics"
	TableCannibalisation = "CannibalisationExport"
)

// Source column names. These are exact, case-sensitive matches on the
// export headers.
const (
	ColTopQueries  = "Top queries"
	ColPosition    = "Position"
	ColKeyword     = "Keyword"
	ColVolume      = "Volume"
	ColDifficulty  = "Difficulty"
	ColIntents     = "Intents"
	ColQuery       = "Query"
	ColLandingPage = "Landing Page"
	ColImpressions = "Impressions"
)

// RequiredColumns is the column contract of each input table
var RequiredColumns = map[string][]string{
	TableQueries:         {ColTopQueries, ColPosition},
	TableKeywords:        {ColKeyword, ColVolume, ColDifficulty, ColIntents},
	TableCannibalisation: {ColQuery, ColLandingPage, ColImpressions},
}

// tableOrder fixes the order tables are validated and reported in
var tableOrder = []string{TableQueries, TableKeywords, TableCannibalisation}

// Table is a raw tabular export: a header row plus string records
type Table struct {
	Name    string
	Header  []string
	Records [][]string
}

// NewTable builds a table from a header and its records
func NewTable(name string, header []string, records [][]string) *Table {
	return &Table{Name: name, Header: header, Records: records}
}

// Index returns the position of the first header cell equal to col, or -1
func (t *Table) Index(col string) int {
	if t == nil {
		return -1
	}
	for i, h := range t.Header {
		if h == col {
			return i
		}
	}
	return -1
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// cell reads record i at column idx; short records read as empty
func (t *Table) cell(i, idx int) string {
	rec := t.Records[i]
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// Inputs are the three raw tables of one run
type Inputs struct {
	Queries         *Table
	Keywords        *Table
	Cannibalisation *Table
}

func (in Inputs) byName(name string) *Table {
	switch name {
	case TableQueries:
		return in.Queries
	case TableKeywords:
		return in.Keywords
	case TableCannibalisation:
		return in.Cannibalisation
	}
	return nil
}
