package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/appforge-api/internal/api/shared"
	"github.com/phrazzld/appforge-api/internal/auth"
	"github.com/phrazzld/appforge-api/internal/domain"
)

// Submitter accepts validated tasks for background processing. Implemented
// by the orchestrator; narrowed to an interface so handlers are testable
// without the full pipeline.
type Submitter interface {
	Submit(ctx context.Context, task *domain.BuildTask) error
}

// TaskHandler handles task submission requests.
type TaskHandler struct {
	submitter Submitter
	verifier  *auth.SecretVerifier
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(submitter Submitter, verifier *auth.SecretVerifier, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		submitter: submitter,
		verifier:  verifier,
		logger:    logger,
	}
}

// SubmitTask handles POST /api/task requests. Authentication failure is
// rejected synchronously with no background work; an accepted task is
// acknowledged immediately while the pipeline runs detached.
func (h *TaskHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	var req SubmitTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.verifier.Verify(req.Secret); err != nil {
		h.logger.Warn("rejected task with invalid secret",
			"task", req.Task,
			"round", req.Round,
			"trace_id", shared.GetTraceID(r.Context()))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid secret")
		return
	}

	task := submitRequestToTask(&req)
	if err := h.submitter.Submit(r.Context(), task); err != nil {
		h.logger.Error("failed to submit task", "error", err, "task", req.Task)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task")
		return
	}

	h.logger.Info("task accepted", "task", req.Task, "round", req.Round)

	shared.RespondWithJSON(w, r, http.StatusOK, AckResponse{
		Status:  "accepted",
		Message: fmt.Sprintf("Round %d processing started", req.Round),
		Task:    req.Task,
		Round:   req.Round,
	})
}

// submitRequestToTask converts the request DTO to the domain entity.
func submitRequestToTask(req *SubmitTaskRequest) *domain.BuildTask {
	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, domain.Attachment{Name: a.Name, URL: a.URL})
	}

	return &domain.BuildTask{
		Email:         req.Email,
		TaskID:        req.Task,
		Round:         domain.Round(req.Round),
		Nonce:         req.Nonce,
		Brief:         req.Brief,
		Checks:        req.Checks,
		EvaluationURL: req.EvaluationURL,
		Attachments:   attachments,
	}
}
