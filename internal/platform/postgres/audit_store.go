// Package postgres implements the audit trail over PostgreSQL. All
// writes are fire-and-forget from the pipeline's perspective: the
// orchestrator logs failures and moves on, so a down database never
// blocks the acknowledgment path or a round.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/phrazzld/appforge-api/internal/platform/logger"
	"github.com/phrazzld/appforge-api/internal/task"
)

// DBTX is the subset of database operations the audit store needs,
// satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// AuditStore implements task.AuditStore using PostgreSQL.
type AuditStore struct {
	db DBTX
}

// NewAuditStore creates a new AuditStore.
func NewAuditStore(db DBTX) *AuditStore {
	return &AuditStore{db: db}
}

// compile-time interface check
var _ task.AuditStore = (*AuditStore)(nil)

// RecordReceived inserts the accepted task into received_tasks.
func (s *AuditStore) RecordReceived(ctx context.Context, t *domain.BuildTask) error {
	log := logger.FromContext(ctx)

	checks, err := json.Marshal(t.Checks)
	if err != nil {
		return fmt.Errorf("failed to encode checks: %w", err)
	}

	query := `
		INSERT INTO received_tasks (id, email, task, round, nonce, brief, checks, evaluation_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.New(),
		t.Email,
		t.TaskID,
		int(t.Round),
		t.Nonce,
		t.Brief,
		checks,
		t.EvaluationURL,
		string(task.StatusReceived),
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to record received task",
			"task", t.TaskID, "round", int(t.Round), "error", err)
		return fmt.Errorf("failed to record received task: %w", err)
	}

	return nil
}

// RecordStatus appends a processing-state transition to processing_logs.
func (s *AuditStore) RecordStatus(
	ctx context.Context,
	taskID string,
	round domain.Round,
	status task.Status,
	detail string,
) error {
	query := `
		INSERT INTO processing_logs (id, task, round, status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		taskID,
		int(round),
		string(status),
		detail,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record status transition: %w", err)
	}

	return nil
}

// RecordRepo inserts the publish outcome into created_repos.
func (s *AuditStore) RecordRepo(
	ctx context.Context,
	taskID string,
	round domain.Round,
	result domain.PublishResult,
) error {
	query := `
		INSERT INTO created_repos (id, task, round, repo_url, commit_sha, pages_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		taskID,
		int(round),
		result.RepoURL,
		result.CommitSHA,
		result.PagesURL,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record repository: %w", err)
	}

	return nil
}

// RecordNotification inserts the delivery outcome into sent_notifications.
func (s *AuditStore) RecordNotification(
	ctx context.Context,
	taskID string,
	round domain.Round,
	callbackURL string,
	delivered bool,
	detail string,
) error {
	query := `
		INSERT INTO sent_notifications (id, task, round, callback_url, delivered, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		taskID,
		int(round),
		callbackURL,
		delivered,
		detail,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	return nil
}
