// Package dataprocessing loads the search exports that feed a striking
// distance run.
//
// CSV and XLSX inputs are supported. Each file is read into a
// striking.Table whose header is the first row; values stay as strings
// until the pipeline decodes them.
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger)
//	in, err := loader.LoadInputs(ctx, dataprocessing.Paths{
//	    Queries:         "queries.csv",
//	    Keywords:        "keywords.xlsx",
//	    Cannibalisation: "cannibalisation.csv",
//	})
//
// Uploaded files can be decoded without touching disk:
//
//	table, err := dataprocessing.LoadReader(part, header.Filename, striking.TableQueries)
//
// # Error Handling
//
// Read failures are wrapped with the table name. Files with an unknown
// extension return ErrUnsupportedFormat.
package dataprocessing
