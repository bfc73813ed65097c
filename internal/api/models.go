package api

// Common request/response structures

// AttachmentPayload is a named content locator attached to a task.
type AttachmentPayload struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url"  validate:"required,url"`
}

// SubmitTaskRequest defines the payload for the task submission endpoint.
type SubmitTaskRequest struct {
	Email         string              `json:"email"          validate:"required,email"`
	Secret        string              `json:"secret"         validate:"required"`
	Task          string              `json:"task"           validate:"required"`
	Round         int                 `json:"round"          validate:"required,oneof=1 2"`
	Nonce         string              `json:"nonce"`
	Brief         string              `json:"brief"          validate:"required"`
	Checks        []string            `json:"checks"`
	EvaluationURL string              `json:"evaluation_url" validate:"required,url"`
	Attachments   []AttachmentPayload `json:"attachments"    validate:"omitempty,dive"`
}

// AckResponse is the immediate acknowledgment returned for an accepted
// task. Background processing continues after this response is sent.
type AckResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Task    string `json:"task"`
	Round   int    `json:"round"`
}

// BannerResponse describes the service for GET /.
type BannerResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse reports configuration presence and pipeline load for
// GET /health.
type HealthResponse struct {
	Status           string `json:"status"`
	GitHubConfigured bool   `json:"github_configured"`
	LLMConfigured    bool   `json:"llm_configured"`
	ActiveTasks      int    `json:"active_tasks"`
	RecordedTasks    int    `json:"recorded_tasks"`
}

// TaskRecordResponse is one entry in the debug task listing.
type TaskRecordResponse struct {
	Task    string `json:"task"`
	RepoURL string `json:"repo_url"`
	Brief   string `json:"brief"`
	Email   string `json:"email"`
}
