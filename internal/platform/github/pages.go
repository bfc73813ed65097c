package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/phrazzld/appforge-api/internal/platform/logger"
)

// encodeContent base64-encodes file content for the contents API.
func encodeContent(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

// pagesStrategy is one attempt at enabling public serving for a
// repository. Strategies run in order; the first success wins and
// exhaustion is non-fatal.
type pagesStrategy struct {
	name string
	run  func(ctx context.Context, p *Publisher, repo string, artifacts domain.ArtifactSet) error
}

// pagesStrategies is the ordered serving-enablement fallback chain.
var pagesStrategies = []pagesStrategy{
	{name: "docs_folder", run: enableViaDocsFolder},
	{name: "gh_pages_branch", run: enableViaPagesBranch},
	{name: "nojekyll_marker", run: enableViaNoJekyll},
}

// enablePages walks the strategy chain, logging each attempt. If every
// strategy fails the repository is still considered published; the pages
// URL in the result may simply not be live yet.
func (p *Publisher) enablePages(ctx context.Context, repo string, artifacts domain.ArtifactSet) {
	log := logger.FromContext(ctx)

	for _, strategy := range pagesStrategies {
		if err := strategy.run(ctx, p, repo, artifacts); err != nil {
			log.Warn("pages enablement strategy failed",
				"strategy", strategy.name,
				"repo", repo,
				"error", err)
			continue
		}
		log.Info("pages serving enabled", "strategy", strategy.name, "repo", repo)
		return
	}

	log.Warn("all pages enablement strategies failed, serving URL may not be live", "repo", repo)
}

// enableViaDocsFolder copies the entry point into docs/ on the main
// branch and points Pages at the docs folder.
func enableViaDocsFolder(ctx context.Context, p *Publisher, repo string, artifacts domain.ArtifactSet) error {
	page, ok := artifacts[domain.PrimaryArtifact]
	if !ok {
		return fmt.Errorf("artifact set has no %s", domain.PrimaryArtifact)
	}

	if err := p.putFile(ctx, repo, "docs/"+domain.PrimaryArtifact, page, ""); err != nil {
		return err
	}

	return p.createPagesSite(ctx, repo, p.branch, "/docs")
}

// enableViaPagesBranch creates a gh-pages branch from HEAD, writes the
// entry point there, and points Pages at it.
func enableViaPagesBranch(ctx context.Context, p *Publisher, repo string, artifacts domain.ArtifactSet) error {
	page, ok := artifacts[domain.PrimaryArtifact]
	if !ok {
		return fmt.Errorf("artifact set has no %s", domain.PrimaryArtifact)
	}

	sha, err := p.headCommit(ctx, repo)
	if err != nil {
		return fmt.Errorf("failed to resolve base commit: %w", err)
	}

	refPath := fmt.Sprintf("/repos/%s/%s/git/refs", p.owner, repo)
	err = p.client.do(ctx, http.MethodPost, refPath, map[string]interface{}{
		"ref": "refs/heads/gh-pages",
		"sha": sha,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create gh-pages branch: %w", err)
	}

	branchPut := map[string]interface{}{
		"message": "Publish to gh-pages",
		"content": encodeContent(page),
		"branch":  "gh-pages",
	}
	filePath := fmt.Sprintf("/repos/%s/%s/contents/%s", p.owner, repo, domain.PrimaryArtifact)
	if err := p.client.do(ctx, http.MethodPut, filePath, branchPut, nil); err != nil {
		return fmt.Errorf("failed to write entry point to gh-pages: %w", err)
	}

	return p.createPagesSite(ctx, repo, "gh-pages", "/")
}

// enableViaNoJekyll drops a .nojekyll marker on the main branch. This does
// not itself turn Pages on but unblocks serving for accounts where Pages
// auto-enables from the default branch.
func enableViaNoJekyll(ctx context.Context, p *Publisher, repo string, _ domain.ArtifactSet) error {
	return p.putFile(ctx, repo, ".nojekyll", "", "")
}

// createPagesSite calls the Pages API to configure the serving source.
func (p *Publisher) createPagesSite(ctx context.Context, repo, branch, path string) error {
	apiPath := fmt.Sprintf("/repos/%s/%s/pages", p.owner, repo)
	return p.client.do(ctx, http.MethodPost, apiPath, map[string]interface{}{
		"source": map[string]string{
			"branch": branch,
			"path":   path,
		},
	}, nil)
}
