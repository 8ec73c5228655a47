package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"strikingdistance/internal/striking"
	"strikingdistance/pkg/contracts/domain"
)

// Format is an output encoding for a result table
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ParseFormat accepts csv, xlsx or json in any case. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// formatFloat formats a value in its shortest round-trip form, so 12.0
// becomes "12" and 14.5 stays "14.5"
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatZScore always renders the fixed number of z-score decimals
func formatZScore(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(striking.ZScorePlaces)
}

// Record renders one row in output column order
func Record(row domain.OpportunityRow) []string {
	return []string{
		row.Keyword,
		row.LandingPage,
		formatFloat(row.AveragePosition),
		formatFloat(row.Volume),
		formatFloat(row.Difficulty),
		formatZScore(row.OpportunityZScore),
		row.Intents,
	}
}
