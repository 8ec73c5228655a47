// Package errors holds the error types shared by the CLI and HTTP layers.
//
// AppError classifies failures by ErrorType with optional context.
// APIError carries an HTTP status and code for request-level failures.
// ErrorHandler turns either into an RFC 7807 problem response; context
// attached to an AppError is rendered as extension members.
package errors
