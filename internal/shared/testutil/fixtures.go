package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// ExportFixture is a set of export files written to disk for a test.
type ExportFixture struct {
	Dir             string
	Queries         string
	Keywords        string
	Cannibalisation string
}

// Sample rows shared by loader, service and handler tests. "running shoes"
// fans out to two landing pages and "boots" sits above the default window.
var (
	SampleQueries = [][]string{
		{"Top queries", "Clicks", "Impressions", "CTR", "Position"},
		{"running shoes", "120", "4000", "3%", "8"},
		{"trail shoes", "30", "2200", "1.4%", "14.5"},
		{"boots", "900", "12000", "7.5%", "3"},
	}
	SampleKeywords = [][]string{
		{"Keyword", "Intents", "Volume", "Keyword Difficulty", "Difficulty"},
		{"running shoes", "commercial", "5,000", "60", "60"},
		{"trail shoes", "commercial", "1200", "", ""},
		{"boots", "commercial", "9000", "70", "70"},
	}
	SampleCannibalisation = [][]string{
		{"Query", "Landing Page", "Impressions"},
		{"running shoes", "/running", "900"},
		{"running shoes", "/shoes/running", "1500"},
		{"trail shoes", "/trail", "300"},
		{"boots", "/boots", "700"},
	}
)

// WriteCSV writes records to name under dir and returns the full path.
func WriteCSV(t *testing.T, dir, name string, records [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture %s: %v", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// NewExportFixture writes the sample exports into a fresh temp directory.
func NewExportFixture(t *testing.T) ExportFixture {
	t.Helper()

	dir := t.TempDir()
	return ExportFixture{
		Dir:             dir,
		Queries:         WriteCSV(t, dir, "queries.csv", SampleQueries),
		Keywords:        WriteCSV(t, dir, "keywords.csv", SampleKeywords),
		Cannibalisation: WriteCSV(t, dir, "cannibalisation.csv", SampleCannibalisation),
	}
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
