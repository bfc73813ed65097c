package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/appforge-api/internal/config"
	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/phrazzld/appforge-api/internal/generation"
	"google.golang.org/genai"
)

// defaultTimeout bounds a single Gemini call when the config does not.
// It must stay well inside the pipeline's stage ceiling so a slow model
// still leaves room for publish and notify.
const defaultTimeout = 30 * time.Second

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger  *slog.Logger
	config  config.LLMConfig
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGenerator creates a Gemini-backed generator.
//
// A missing API key is not an error: the generator is still constructed
// and every request takes the fallback path, so the pipeline keeps its
// deadline guarantee even with no LLM configured.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	g := &Generator{
		logger:  logger,
		config:  cfg,
		model:   cfg.ModelName,
		timeout: timeout,
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("no Gemini API key configured, all generation will use fallback templates")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	g.client = client

	return g, nil
}

// Generate creates the round-1 artifact set for a brief. The LLM produces
// only the page; README, LICENSE, and .gitignore are assembled locally so
// the set always contains the servable entry point and its scaffolding.
func (g *Generator) Generate(
	ctx context.Context,
	brief string,
	checks []string,
	attachments []domain.Attachment,
) (domain.ArtifactSet, error) {
	if brief == "" {
		return nil, generation.ErrEmptyBrief
	}

	page, err := g.generatePage(ctx, buildPrompt(brief, checks, len(attachments)))
	if err != nil {
		g.logger.WarnContext(ctx, "generation failed, using fallback template",
			"error", err,
			"category", generation.CategorizeBrief(brief).String())
		return generation.FallbackArtifacts(brief, checks), nil
	}

	return domain.ArtifactSet{
		domain.PrimaryArtifact: page,
		"README.md":            generation.Readme(brief, checks),
		"LICENSE":              generation.MITLicense(),
		".gitignore":           generation.Gitignore(),
	}, nil
}

// Modify produces the round-2 overlay: an updated page plus a README
// documenting the revision. The overlay is partial; files it omits
// survive in the published repository.
func (g *Generator) Modify(
	ctx context.Context,
	originalBrief, newBrief string,
	existing domain.ArtifactSet,
) (domain.ArtifactSet, error) {
	if newBrief == "" {
		return nil, generation.ErrEmptyBrief
	}

	page, err := g.generatePage(ctx, buildModifyPrompt(originalBrief, newBrief, existing[domain.PrimaryArtifact]))
	if err != nil {
		g.logger.WarnContext(ctx, "modification failed, using fallback template",
			"error", err,
			"category", generation.CategorizeBrief(newBrief).String())
		page = generation.FallbackPage(newBrief)
	}

	return domain.ArtifactSet{
		domain.PrimaryArtifact: page,
		"README.md":            generation.UpdatedReadme(originalBrief, newBrief),
	}, nil
}

// generatePage makes a single bounded Gemini call and extracts the HTML
// document from the response text.
func (g *Generator) generatePage(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: no API key configured", generation.ErrInvalidConfig)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned empty response")
	}

	g.logger.DebugContext(ctx, "gemini call completed",
		"model", g.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text))

	page, err := generation.ExtractHTML(text)
	if err != nil {
		return "", fmt.Errorf("failed to extract code from response: %w", err)
	}

	return page, nil
}
