// Package api contains the HTTP handlers and request/response models for
// the task submission endpoint and the auxiliary read-only status
// endpoints. Handlers validate and acknowledge; all real work happens in
// the orchestrator, off the request path.
package api
