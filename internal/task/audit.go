package task

import (
	"context"

	"github.com/phrazzld/appforge-api/internal/domain"
)

// Status is the audit-trail processing state of a (task, round).
type Status string

// Possible audit status values.
const (
	StatusReceived   Status = "received"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// AuditStore records the pipeline's progress for later inspection. Every
// method is best-effort from the orchestrator's point of view: a failed
// audit write is logged by the implementation and never blocks or fails
// the pipeline, in particular not the synchronous acknowledgment path.
type AuditStore interface {
	// RecordReceived inserts the accepted task.
	RecordReceived(ctx context.Context, task *domain.BuildTask) error

	// RecordStatus appends a processing-state transition.
	RecordStatus(ctx context.Context, taskID string, round domain.Round, status Status, detail string) error

	// RecordRepo records a repository created or updated for the task.
	RecordRepo(ctx context.Context, taskID string, round domain.Round, result domain.PublishResult) error

	// RecordNotification records the outcome of a notification delivery.
	RecordNotification(ctx context.Context, taskID string, round domain.Round, callbackURL string, delivered bool, detail string) error
}

// NoopAuditStore is the AuditStore used when no audit database is
// configured.
type NoopAuditStore struct{}

func (NoopAuditStore) RecordReceived(context.Context, *domain.BuildTask) error {
	return nil
}

func (NoopAuditStore) RecordStatus(context.Context, string, domain.Round, Status, string) error {
	return nil
}

func (NoopAuditStore) RecordRepo(context.Context, string, domain.Round, domain.PublishResult) error {
	return nil
}

func (NoopAuditStore) RecordNotification(context.Context, string, domain.Round, string, bool, string) error {
	return nil
}
