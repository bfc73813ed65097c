package domain

import (
	"errors"
)

// Round identifies which pass of a build task is being processed.
// Round 1 creates a repository; round 2 extends the repository created
// by round 1 of the same task.
type Round int

// Valid round values.
const (
	RoundInitial  Round = 1
	RoundRevision Round = 2
)

// Common validation errors for BuildTask
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTaskEmail     = errors.New("task email cannot be empty")
	ErrEmptyTaskBrief     = errors.New("task brief cannot be empty")
	ErrEmptyEvaluationURL = errors.New("task evaluation URL cannot be empty")
	ErrInvalidRound       = errors.New("round must be 1 or 2")
)

// Attachment is a named reference to supplementary task material.
// The content is addressed by URL and fetched lazily, if at all.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BuildTask represents an accepted build request. It exists only in process
// memory: created on acceptance, discarded on process restart.
type BuildTask struct {
	Email         string       `json:"email"`
	TaskID        string       `json:"task"`
	Round         Round        `json:"round"`
	Nonce         string       `json:"nonce"`
	Brief         string       `json:"brief"`
	Checks        []string     `json:"checks"`
	EvaluationURL string       `json:"evaluation_url"`
	Attachments   []Attachment `json:"attachments,omitempty"`
}

// Validate checks if the BuildTask has valid data.
// Returns an error if any field fails validation.
func (t *BuildTask) Validate() error {
	if t.TaskID == "" {
		return ErrEmptyTaskID
	}

	if t.Email == "" {
		return ErrEmptyTaskEmail
	}

	if t.Brief == "" {
		return ErrEmptyTaskBrief
	}

	if t.EvaluationURL == "" {
		return ErrEmptyEvaluationURL
	}

	if t.Round != RoundInitial && t.Round != RoundRevision {
		return ErrInvalidRound
	}

	return nil
}
