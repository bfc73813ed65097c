package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/phrazzld/appforge-api/internal/generation"
	"github.com/phrazzld/appforge-api/internal/notify"
	"github.com/phrazzld/appforge-api/internal/platform/logger"
	"github.com/phrazzld/appforge-api/internal/publish"
	"github.com/phrazzld/appforge-api/internal/roundstate"
)

// OrchestratorConfig bounds the background pipeline.
type OrchestratorConfig struct {
	// TotalCeiling is the hard wall-clock budget for a whole round,
	// notification included.
	TotalCeiling time.Duration

	// StageCeiling bounds the generate/publish stages. It must be strictly
	// smaller than TotalCeiling so a buffer remains for notification.
	StageCeiling time.Duration
}

// DefaultOrchestratorConfig mirrors the evaluation protocol: 9 minutes
// total, 8 minutes for the stages.
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		TotalCeiling: 9 * time.Minute,
		StageCeiling: 8 * time.Minute,
	}
}

// Orchestrator is the pipeline controller. It accepts validated tasks,
// acknowledges them synchronously, and runs each round as a detached
// background operation under the deadline clock.
type Orchestrator struct {
	generator generation.Generator
	publisher publish.Publisher
	records   *roundstate.Store
	notifier  notify.Notifier
	audit     AuditStore
	logger    *slog.Logger
	config    OrchestratorConfig

	active atomic.Int64
	wg     sync.WaitGroup
}

// NewOrchestrator wires the pipeline from its collaborators. A nil audit
// store falls back to the no-op implementation.
func NewOrchestrator(
	generator generation.Generator,
	publisher publish.Publisher,
	records *roundstate.Store,
	notifier notify.Notifier,
	audit AuditStore,
	log *slog.Logger,
	cfg OrchestratorConfig,
) (*Orchestrator, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if publisher == nil {
		return nil, errors.New("publisher cannot be nil")
	}
	if records == nil {
		return nil, errors.New("round state store cannot be nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if audit == nil {
		audit = NoopAuditStore{}
	}
	if cfg.TotalCeiling <= 0 || cfg.StageCeiling <= 0 || cfg.StageCeiling >= cfg.TotalCeiling {
		return nil, fmt.Errorf("invalid ceilings: stage %v must be positive and below total %v",
			cfg.StageCeiling, cfg.TotalCeiling)
	}

	return &Orchestrator{
		generator: generator,
		publisher: publisher,
		records:   records,
		notifier:  notifier,
		audit:     audit,
		logger:    log,
		config:    cfg,
	}, nil
}

// Submit validates the task, writes the audit record, and spawns the
// background operation. It returns quickly: the only I/O on this path is
// the best-effort audit insert, whose failure is logged, not returned.
// The caller sends the acknowledgment as soon as Submit returns nil.
func (o *Orchestrator) Submit(ctx context.Context, t *domain.BuildTask) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	if err := o.audit.RecordReceived(ctx, t); err != nil {
		o.logger.Warn("audit write failed for accepted task",
			"task", t.TaskID, "round", int(t.Round), "error", err)
	}

	o.active.Add(1)
	o.wg.Add(1)
	go o.execute(t)

	return nil
}

// ActiveTasks returns the number of background operations in flight.
func (o *Orchestrator) ActiveTasks() int {
	return int(o.active.Load())
}

// Wait blocks until all in-flight background operations finish. Used by
// tests and graceful shutdown; it does not stop new submissions.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// execute is the detached background operation for one (task, round).
// Every failure is caught here and converted to a log entry; nothing
// propagates back to the submitter.
func (o *Orchestrator) execute(t *domain.BuildTask) {
	defer o.wg.Done()
	defer o.active.Add(-1)

	log := o.logger.With("task", t.TaskID, "round", int(t.Round))
	ctx := logger.WithLogger(context.Background(), log)

	defer func() {
		if r := recover(); r != nil {
			log.Error("pipeline panicked", "panic", r)
			o.recordStatus(ctx, t, StatusFailed, fmt.Sprintf("panic: %v", r))
		}
	}()

	clock := NewDeadlineClock(o.config.TotalCeiling, o.config.StageCeiling)
	log.Info("background processing started",
		"total_ceiling", o.config.TotalCeiling.String(),
		"stage_ceiling", o.config.StageCeiling.String())
	o.recordStatus(ctx, t, StatusProcessing, "")

	stageCtx, cancel := context.WithTimeout(ctx, clock.StageRemaining())
	payload, err := o.runStages(stageCtx, t)
	cancel()

	if err != nil {
		if errors.Is(stageCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			log.Error("stage ceiling exceeded, abandoning task",
				"elapsed", clock.Elapsed().String())
			o.recordStatus(ctx, t, StatusFailed, ErrDeadlineExceeded.Error())
			return
		}
		log.Error("pipeline failed", "error", err, "elapsed", clock.Elapsed().String())
		o.recordStatus(ctx, t, StatusFailed, err.Error())
		return
	}

	totalRemaining := clock.TotalRemaining()
	if totalRemaining <= 0 {
		log.Error("total ceiling exceeded before notification",
			"elapsed", clock.Elapsed().String())
		o.recordStatus(ctx, t, StatusFailed, "deadline exceeded before notification")
		return
	}

	notifyCtx, cancelNotify := context.WithTimeout(ctx, totalRemaining)
	notifyErr := o.notifier.Notify(notifyCtx, payload, t.EvaluationURL)
	cancelNotify()

	delivered := notifyErr == nil
	detail := ""
	if notifyErr != nil {
		detail = notifyErr.Error()
	}
	if err := o.audit.RecordNotification(ctx, t.TaskID, t.Round, t.EvaluationURL, delivered, detail); err != nil {
		log.Warn("audit write failed for notification", "error", err)
	}

	if notifyErr != nil {
		// Notification failure never invalidates the published repository.
		log.Warn("notification failed, result not delivered", "error", notifyErr)
	}

	if clock.TotalExceeded() {
		log.Error("total ceiling exceeded", "elapsed", clock.Elapsed().String())
		return
	}

	o.recordStatus(ctx, t, StatusCompleted, "")
	log.Info("background processing finished",
		"elapsed", clock.Elapsed().String(),
		"notified", delivered)
}

// runStages sequences the round's generate and publish stages and builds
// the notification payload.
func (o *Orchestrator) runStages(ctx context.Context, t *domain.BuildTask) (notify.Payload, error) {
	var result domain.PublishResult
	var err error

	switch t.Round {
	case domain.RoundInitial:
		result, err = o.runInitialRound(ctx, t)
	case domain.RoundRevision:
		result, err = o.runRevisionRound(ctx, t)
	default:
		err = domain.ErrInvalidRound
	}
	if err != nil {
		return notify.Payload{}, err
	}

	return notify.Payload{
		Email:     t.Email,
		Task:      t.TaskID,
		Round:     int(t.Round),
		Nonce:     t.Nonce,
		RepoURL:   result.RepoURL,
		CommitSHA: result.CommitSHA,
		PagesURL:  result.PagesURL,
	}, nil
}

// runInitialRound generates a fresh artifact set, publishes it as a new
// repository, and records the outcome for round 2.
func (o *Orchestrator) runInitialRound(ctx context.Context, t *domain.BuildTask) (domain.PublishResult, error) {
	log := logger.FromContext(ctx)

	artifacts, err := o.generator.Generate(ctx, t.Brief, t.Checks, t.Attachments)
	if err != nil {
		// Generation is never fatal to a round.
		log.Warn("generator returned error, substituting fallback artifacts", "error", err)
		artifacts = generation.FallbackArtifacts(t.Brief, t.Checks)
	}

	name := publish.RepoName(t.TaskID, t.Round, time.Now())
	result, err := o.publisher.Create(ctx, name, artifacts)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("publish failed: %w", err)
	}

	o.records.Put(t.TaskID, domain.RoundRecord{
		RepoURL: result.RepoURL,
		Brief:   t.Brief,
		Email:   t.Email,
	})

	if err := o.audit.RecordRepo(ctx, t.TaskID, t.Round, result); err != nil {
		log.Warn("audit write failed for created repo", "error", err)
	}

	return result, nil
}

// runRevisionRound extends the repository created in round 1. A missing
// round-1 record is terminal: there is nothing to extend.
func (o *Orchestrator) runRevisionRound(ctx context.Context, t *domain.BuildTask) (domain.PublishResult, error) {
	log := logger.FromContext(ctx)

	record, ok := o.records.Get(t.TaskID)
	if !ok {
		return domain.PublishResult{}, fmt.Errorf("%w: %s", ErrPrerequisiteMissing, t.TaskID)
	}

	existing, err := o.publisher.Fetch(ctx, record.RepoURL)
	if err != nil {
		// The revision prompt degrades without the current code but the
		// round can still proceed.
		log.Warn("failed to fetch existing artifacts, modifying blind", "error", err)
		existing = domain.ArtifactSet{}
	}

	overlay, err := o.generator.Modify(ctx, record.Brief, t.Brief, existing)
	if err != nil {
		log.Warn("generator returned error, substituting fallback overlay", "error", err)
		overlay = domain.ArtifactSet{
			domain.PrimaryArtifact: generation.FallbackPage(t.Brief),
			"README.md":            generation.UpdatedReadme(record.Brief, t.Brief),
		}
	}

	result, err := o.publisher.Update(ctx, record.RepoURL, overlay)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("publish failed: %w", err)
	}

	if err := o.audit.RecordRepo(ctx, t.TaskID, t.Round, result); err != nil {
		log.Warn("audit write failed for updated repo", "error", err)
	}

	return result, nil
}

// recordStatus writes a processing-state transition, logging on failure.
func (o *Orchestrator) recordStatus(ctx context.Context, t *domain.BuildTask, status Status, detail string) {
	if err := o.audit.RecordStatus(ctx, t.TaskID, t.Round, status, detail); err != nil {
		logger.FromContext(ctx).Warn("audit status write failed",
			"status", string(status), "error", err)
	}
}
