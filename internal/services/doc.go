// Package services is the business layer between the HTTP handlers, the
// CLI and the striking distance pipeline.
//
// OpportunityService wraps every pipeline run in a span, records the run
// outcome on the pipeline metrics and converts pipeline failures into
// AppErrors the error handler understands:
//
//	*striking.MissingColumnsError  -> MISSING_COLUMNS (422, "missing" extension)
//	striking.ErrInvalidOptions     -> INVALID_OPTIONS (400)
//	load/decode failures           -> PARSING (400)
//
// In strict mode a raised condition fails the run with EMPTY_RESULT or
// DEGENERATE_SCORE instead of being reported on the result.
//
// HealthService backs the health, readiness, liveness and version endpoints.
package services
