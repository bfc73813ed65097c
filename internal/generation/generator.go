package generation

import (
	"context"
	"errors"

	"github.com/phrazzld/appforge-api/internal/domain"
)

// Common errors for generation configuration and requests.
var (
	// ErrInvalidConfig indicates the generator was constructed with
	// missing or invalid configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyBrief indicates a generation request with no brief text.
	ErrEmptyBrief = errors.New("brief cannot be empty")

	// ErrNoCode indicates the backend produced text with no extractable
	// code region.
	ErrNoCode = errors.New("no code block found in generated content")
)

// Generator produces the artifact sets a round publishes.
// Implementations must be bounded in time and must degrade to the fallback
// library on backend failure rather than returning an error to the
// pipeline; the error returns below exist for unrecoverable misuse
// (e.g. an empty brief), not backend trouble.
type Generator interface {
	// Generate creates a complete round-1 artifact set for the given brief.
	// The checks and attachments inform the prompt but are never required.
	Generate(ctx context.Context, brief string, checks []string, attachments []domain.Attachment) (domain.ArtifactSet, error)

	// Modify produces a round-2 overlay extending an existing app. It
	// receives both the original round-1 brief and the new brief, plus the
	// currently published artifacts. The returned set is partial: only the
	// files to update or add.
	Modify(ctx context.Context, originalBrief, newBrief string, existing domain.ArtifactSet) (domain.ArtifactSet, error)
}
