package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strikingdistance/pkg/contracts/domain"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero value", input: 0.0, expected: "0"},
		{name: "integer position", input: 12.0, expected: "12"},
		{name: "fractional position", input: 14.5, expected: "14.5"},
		{name: "large volume", input: 120000, expected: "120000"},
		{name: "long fraction", input: 7.125, expected: "7.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.input))
		})
	}
}

func TestFormatZScore(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.00"},
		{0.71, "0.71"},
		{-1.41, "-1.41"},
		{1.5, "1.50"},
		{2, "2.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatZScore(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatCSV},
		{input: "csv", want: FormatCSV},
		{input: " XLSX ", want: FormatXLSX},
		{input: "Json", want: FormatJSON},
		{input: "parquet", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContentTypeAndExtension(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Equal(t, ".xlsx", FormatXLSX.Extension())
	assert.Equal(t, "striking_distance.csv", DefaultFileName(FormatCSV))
}

func TestRecord(t *testing.T) {
	row := domain.OpportunityRow{
		Keyword:           "shoes",
		LandingPage:       "/shoes",
		AveragePosition:   12,
		Volume:            1000,
		Difficulty:        40,
		OpportunityScore:  60000,
		OpportunityZScore: 0,
		Intents:           "commercial",
	}

	assert.Equal(t, []string{"shoes", "/shoes", "12", "1000", "40", "0.00", "commercial"}, Record(row))
}
