// Package exporter writes striking distance results as CSV, XLSX or JSON.
//
// CSV output has a fixed header and no index column. Numbers use their
// shortest round-trip form and z-scores always show two decimals, so the
// same result always encodes to the same bytes. A UTF-8 BOM can be
// prepended for spreadsheet tools.
//
// Example usage:
//
//	w := exporter.NewWriter(paths, exporter.WriteOptions{BOMPrefix: true}, logger)
//	path, err := w.WriteFile("striking_distance.csv", exporter.FormatCSV, result)
//
//	// or stream to a response
//	err = w.Write(rw, exporter.FormatJSON, result)
package exporter
