// Package logkey holds the slog attribute keys shared by every service, so log
// lines stay greppable across the fleet.
package logkey

const (
	TraceID = "TRACE ID"
	ERROR   = "ERROR"
	UserID  = "UserID"
	Service = "Service"
	URL     = "URL"
	Method  = "Method"
	Status  = "Status"
)
