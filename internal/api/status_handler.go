package api

import (
	"net/http"
	"sort"

	"github.com/phrazzld/appforge-api/internal/api/shared"
	"github.com/phrazzld/appforge-api/internal/roundstate"
)

// serviceVersion is reported by the banner endpoint.
const serviceVersion = "1.0.0"

// PipelineStatus exposes the orchestrator's current load to the health
// endpoint.
type PipelineStatus interface {
	ActiveTasks() int
}

// StatusHandler serves the auxiliary read-only endpoints: service banner,
// health, and the debug task listing. These are thin reflections over
// in-memory state, not part of the pipeline contract.
type StatusHandler struct {
	pipeline         PipelineStatus
	records          *roundstate.Store
	githubConfigured bool
	llmConfigured    bool
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(pipeline PipelineStatus, records *roundstate.Store, githubConfigured, llmConfigured bool) *StatusHandler {
	return &StatusHandler{
		pipeline:         pipeline,
		records:          records,
		githubConfigured: githubConfigured,
		llmConfigured:    llmConfigured,
	}
}

// Banner handles GET / requests.
func (h *StatusHandler) Banner(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, BannerResponse{
		Service: "appforge-api",
		Version: serviceVersion,
		Status:  "running",
	})
}

// Health handles GET /health requests.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:           "ok",
		GitHubConfigured: h.githubConfigured,
		LLMConfigured:    h.llmConfigured,
		ActiveTasks:      h.pipeline.ActiveTasks(),
		RecordedTasks:    h.records.Count(),
	})
}

// ListTasks handles GET /tasks requests: a debug dump of the round-state
// map, sorted by task ID for stable output.
func (h *StatusHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	snapshot := h.records.Snapshot()

	out := make([]TaskRecordResponse, 0, len(snapshot))
	for taskID, record := range snapshot {
		out = append(out, TaskRecordResponse{
			Task:    taskID,
			RepoURL: record.RepoURL,
			Brief:   record.Brief,
			Email:   record.Email,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Task < out[j].Task })

	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
