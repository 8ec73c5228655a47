// Package shared provides common utilities and test helpers used across the
// striking distance codebase.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - Export fixture writers that lay down Search Console, keyword research
//     and cannibalisation CSVs in a temporary directory
//   - A buffered slog handler for asserting on log output
//
// It should NOT contain business logic or import internal domain packages.
package shared
