package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/appforge-api/internal/auth"
	"github.com/phrazzld/appforge-api/internal/config"
	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSubmitter records submitted tasks.
type mockSubmitter struct {
	submitted []*domain.BuildTask
	err       error
}

func (m *mockSubmitter) Submit(ctx context.Context, task *domain.BuildTask) error {
	if m.err != nil {
		return m.err
	}
	m.submitted = append(m.submitted, task)
	return nil
}

func newTestHandler(t *testing.T, submitter *mockSubmitter) *TaskHandler {
	t.Helper()
	verifier, err := auth.NewSecretVerifier(config.AuthConfig{Secret: "s3cret"})
	require.NoError(t, err)
	return NewTaskHandler(submitter, verifier, slog.Default())
}

func submitBody(t *testing.T, mutate func(map[string]interface{})) *bytes.Reader {
	t.Helper()
	body := map[string]interface{}{
		"email":          "student@example.com",
		"secret":         "s3cret",
		"task":           "t1",
		"round":          1,
		"nonce":          "abc123",
		"brief":          "build a calculator",
		"checks":         []string{"has buttons"},
		"evaluation_url": "https://eval.example.com/notify",
	}
	if mutate != nil {
		mutate(body)
	}
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(encoded)
}

func TestSubmitTaskAccepted(t *testing.T) {
	t.Parallel()

	submitter := &mockSubmitter{}
	handler := newTestHandler(t, submitter)

	req := httptest.NewRequest(http.MethodPost, "/api/task", submitBody(t, nil))
	rec := httptest.NewRecorder()
	handler.SubmitTask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ack AckResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ack))
	assert.Equal(t, "accepted", ack.Status)
	assert.Equal(t, "Round 1 processing started", ack.Message)
	assert.Equal(t, "t1", ack.Task)
	assert.Equal(t, 1, ack.Round)

	require.Len(t, submitter.submitted, 1)
	task := submitter.submitted[0]
	assert.Equal(t, "t1", task.TaskID)
	assert.Equal(t, domain.RoundInitial, task.Round)
	assert.Equal(t, "abc123", task.Nonce)
	assert.Equal(t, []string{"has buttons"}, task.Checks)
}

// Authentication failure yields a rejection with no background work.
func TestSubmitTaskInvalidSecret(t *testing.T) {
	t.Parallel()

	submitter := &mockSubmitter{}
	handler := newTestHandler(t, submitter)

	body := submitBody(t, func(m map[string]interface{}) { m["secret"] = "wrong" })
	req := httptest.NewRequest(http.MethodPost, "/api/task", body)
	rec := httptest.NewRecorder()
	handler.SubmitTask(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, submitter.submitted, "no background work on auth failure")
}

func TestSubmitTaskValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing email", func(m map[string]interface{}) { delete(m, "email") }},
		{"bad email", func(m map[string]interface{}) { m["email"] = "not-an-email" }},
		{"missing task", func(m map[string]interface{}) { delete(m, "task") }},
		{"round out of range", func(m map[string]interface{}) { m["round"] = 3 }},
		{"missing brief", func(m map[string]interface{}) { delete(m, "brief") }},
		{"bad evaluation url", func(m map[string]interface{}) { m["evaluation_url"] = "nope" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			submitter := &mockSubmitter{}
			handler := newTestHandler(t, submitter)

			req := httptest.NewRequest(http.MethodPost, "/api/task", submitBody(t, tc.mutate))
			rec := httptest.NewRecorder()
			handler.SubmitTask(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, submitter.submitted)
		})
	}
}

func TestSubmitTaskMalformedJSON(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, &mockSubmitter{})

	req := httptest.NewRequest(http.MethodPost, "/api/task", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.SubmitTask(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitTaskSubmitterError(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, &mockSubmitter{err: errors.New("invalid task")})

	req := httptest.NewRequest(http.MethodPost, "/api/task", submitBody(t, nil))
	rec := httptest.NewRecorder()
	handler.SubmitTask(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitTaskWithAttachments(t *testing.T) {
	t.Parallel()

	submitter := &mockSubmitter{}
	handler := newTestHandler(t, submitter)

	body := submitBody(t, func(m map[string]interface{}) {
		m["attachments"] = []map[string]string{
			{"name": "data.csv", "url": "https://example.com/data.csv"},
		}
	})
	req := httptest.NewRequest(http.MethodPost, "/api/task", body)
	rec := httptest.NewRecorder()
	handler.SubmitTask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, submitter.submitted, 1)
	require.Len(t, submitter.submitted[0].Attachments, 1)
	assert.Equal(t, "data.csv", submitter.submitted[0].Attachments[0].Name)
}
