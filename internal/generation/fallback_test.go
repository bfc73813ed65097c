package generation

import (
	"strings"
	"testing"

	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeBrief(t *testing.T) {
	t.Parallel()

	tests := []struct {
		brief string
		want  BriefCategory
	}{
		{"build a calculator app", CategoryCalculator},
		{"Build A CALCULATOR", CategoryCalculator},
		{"something to calculate tips", CategoryCalculator},
		{"solve captcha images", CategoryCaptcha},
		{"a markdown previewer", CategoryMarkdown},
		{"a todo list", CategoryGeneric},
		{"", CategoryGeneric},
	}

	for _, tc := range tests {
		t.Run(tc.brief, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CategorizeBrief(tc.brief))
		})
	}
}

// Given the same brief twice, the fallback path must produce
// byte-identical artifacts both times.
func TestFallbackArtifactsDeterministic(t *testing.T) {
	t.Parallel()

	brief := "build a calculator"
	checks := []string{"supports addition", "supports division"}

	first := FallbackArtifacts(brief, checks)
	second := FallbackArtifacts(brief, checks)

	require.Equal(t, first, second)
	for name := range first {
		assert.Equal(t, []byte(first[name]), []byte(second[name]), "artifact %s differs", name)
	}
}

func TestFallbackArtifactsContents(t *testing.T) {
	t.Parallel()

	artifacts := FallbackArtifacts("build a calculator", []string{"has buttons"})

	require.True(t, artifacts.HasPrimary(), "fallback set must contain the servable entry point")
	assert.Contains(t, artifacts[domain.PrimaryArtifact], "<!DOCTYPE html>")
	assert.Contains(t, artifacts["README.md"], "has buttons")
	assert.Contains(t, artifacts["LICENSE"], "MIT License")
	assert.NotEmpty(t, artifacts[".gitignore"])
}

func TestFallbackPagePerCategory(t *testing.T) {
	t.Parallel()

	assert.Contains(t, FallbackPage("a calculator"), "Calculator")
	assert.Contains(t, FallbackPage("captcha helper"), "CAPTCHA")
	assert.Contains(t, FallbackPage("markdown converter"), "Markdown")
	assert.Contains(t, FallbackPage("anything else"), "Application")
}

func TestReadmeHeadline(t *testing.T) {
	t.Parallel()

	readme := Readme("Build a calculator. It should add numbers.", nil)
	firstLine := strings.SplitN(readme, "\n", 2)[0]
	assert.Equal(t, "# Build a calculator", firstLine)
}

func TestUpdatedReadmeDocumentsRevision(t *testing.T) {
	t.Parallel()

	readme := UpdatedReadme("build a calculator", "add a dark theme")
	assert.Contains(t, readme, "build a calculator")
	assert.Contains(t, readme, "add a dark theme")
	assert.Contains(t, readme, "## Revision")
}
