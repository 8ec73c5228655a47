// Package http implements the HTTP handlers of the striking distance service.
// Handlers stay thin: they parse the request, call a service and shape the
// response. Errors go through the shared RFC 7807 error handler.
//
// # Routes
//
//	GET  /api/health           health status
//	GET  /api/health/ready     readiness (output directory writable)
//	GET  /api/health/live      liveness with runtime stats
//	GET  /api/version          build information
//	POST /api/opportunities    run the pipeline over uploaded exports
//	GET  /metrics              Prometheus scrape endpoint
//
// # POST /api/opportunities
//
// multipart/form-data with three files, "queries", "keywords" and
// "cannibalisation" (CSV or XLSX), and optional fields min_position,
// max_position, exclude_keywords, combine_keywords, strict and
// format (json, csv or xlsx; json by default).
//
// JSON responses use the envelope:
//
//	{"status":"success","data":[...],"count":2,"conditions":[...],"stats":{...}}
//
// CSV and XLSX responses are attachments. A CSV download with no rows answers
// 204 No Content. Raised conditions are listed in the X-Striking-Conditions
// header of file downloads.
package http
