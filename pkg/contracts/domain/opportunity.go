package domain

// Default position window for striking distance keywords
const (
	DefaultMinPosition = 6
	DefaultMaxPosition = 30
)

// QueryPerformance is one search-console query row
type QueryPerformance struct {
	Query           string   `json:"query"`
	AveragePosition *float64 `json:"average_position,omitempty"`
}

// KeywordMetrics is one keyword research row. Volume and Difficulty are nil
// when the export left them blank or unparsable.
type KeywordMetrics struct {
	Keyword    string   `json:"keyword"`
	Volume     *float64 `json:"volume,omitempty"`
	Difficulty *float64 `json:"difficulty,omitempty"`
	Intents    string   `json:"intents"`
}

// CannibalisationRow is one landing page competing for a query
type CannibalisationRow struct {
	Query       string   `json:"query"`
	LandingPage string   `json:"landing_page"`
	Impressions *float64 `json:"impressions,omitempty"`
}

// OpportunityRow is one ranked striking distance keyword
type OpportunityRow struct {
	Keyword           string  `json:"keyword" csv:"Keyword"`
	LandingPage       string  `json:"landing_page" csv:"Landing Page"`
	AveragePosition   float64 `json:"average_position" csv:"Average Position"`
	Volume            float64 `json:"volume" csv:"Volume"`
	Difficulty        float64 `json:"difficulty" csv:"Difficulty"`
	OpportunityScore  float64 `json:"opportunity_score" csv:"-"`
	OpportunityZScore float64 `json:"opportunity_zscore" csv:"Opportunity Z-Score"`
	Intents           string  `json:"intents" csv:"Intents"`
}

// Options are the user-selected knobs of one pipeline run
type Options struct {
	MinPosition     int    `json:"min_position" yaml:"min_position" validate:"gte=0,ltefield=MaxPosition"`
	MaxPosition     int    `json:"max_position" yaml:"max_position" validate:"gte=0"`
	ExcludeKeywords string `json:"exclude_keywords,omitempty" yaml:"exclude_keywords"`
	CombineKeywords bool   `json:"combine_keywords" yaml:"combine_keywords"`
}

// DefaultOptions returns the stock position window with no exclusions
func DefaultOptions() Options {
	return Options{
		MinPosition: DefaultMinPosition,
		MaxPosition: DefaultMaxPosition,
	}
}
