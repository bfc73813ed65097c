package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/appforge-api/internal/config"
	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/phrazzld/appforge-api/internal/platform/logger"
)

// Publisher implements publish.Publisher against the GitHub REST API.
type Publisher struct {
	client *client
	logger *slog.Logger
	owner  string
	branch string
}

// NewPublisher creates a GitHub-backed publisher from configuration.
func NewPublisher(log *slog.Logger, cfg config.GitHubConfig) (*Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token cannot be empty")
	}
	if cfg.Owner == "" {
		return nil, fmt.Errorf("github owner cannot be empty")
	}

	base := strings.TrimSuffix(cfg.APIBase, "/")
	if base == "" {
		base = "https://api.github.com"
	}
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	return &Publisher{
		client: newClient(base, cfg.Token),
		logger: log,
		owner:  cfg.Owner,
		branch: branch,
	}, nil
}

// fileContent is the GitHub contents-API representation of a file.
type fileContent struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Create publishes a new repository with the given artifacts, attempts to
// enable Pages serving, and returns the publish result. Serving
// enablement is best-effort; its failure never fails the create.
func (p *Publisher) Create(
	ctx context.Context,
	name string,
	artifacts domain.ArtifactSet,
) (domain.PublishResult, error) {
	log := logger.FromContext(ctx)

	var repo struct {
		Name    string `json:"name"`
		HTMLURL string `json:"html_url"`
	}
	err := p.client.do(ctx, http.MethodPost, "/user/repos", map[string]interface{}{
		"name":        name,
		"description": "Generated application",
		"private":     false,
		"auto_init":   false,
	}, &repo)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("failed to create repository %q: %w", name, err)
	}
	log.Info("repository created", "repo", name, "url", repo.HTMLURL)

	for path, content := range artifacts {
		if err := p.putFile(ctx, name, path, content, ""); err != nil {
			return domain.PublishResult{}, fmt.Errorf("failed to create file %q: %w", path, err)
		}
	}

	p.enablePages(ctx, name, artifacts)

	sha, err := p.headCommit(ctx, name)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	return domain.PublishResult{
		RepoURL:   repo.HTMLURL,
		CommitSHA: sha,
		PagesURL:  fmt.Sprintf("https://%s.github.io/%s", p.owner, name),
	}, nil
}

// Update merges the artifact overlay into an existing repository:
// same-named files are updated in place, missing ones created, and files
// not present in the overlay are left untouched.
func (p *Publisher) Update(
	ctx context.Context,
	repoURL string,
	artifacts domain.ArtifactSet,
) (domain.PublishResult, error) {
	log := logger.FromContext(ctx)

	name, err := repoNameFromURL(repoURL)
	if err != nil {
		return domain.PublishResult{}, err
	}

	for path, content := range artifacts {
		existing, err := p.getFile(ctx, name, path)
		switch {
		case err == nil:
			if err := p.putFile(ctx, name, path, content, existing.SHA); err != nil {
				return domain.PublishResult{}, fmt.Errorf("failed to update file %q: %w", path, err)
			}
		case IsNotFound(err):
			if err := p.putFile(ctx, name, path, content, ""); err != nil {
				return domain.PublishResult{}, fmt.Errorf("failed to create file %q: %w", path, err)
			}
		default:
			return domain.PublishResult{}, fmt.Errorf("failed to read file %q: %w", path, err)
		}
	}
	log.Info("repository updated", "repo", name, "files", len(artifacts))

	sha, err := p.headCommit(ctx, name)
	if err != nil {
		return domain.PublishResult{}, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	return domain.PublishResult{
		RepoURL:   repoURL,
		CommitSHA: sha,
		PagesURL:  fmt.Sprintf("https://%s.github.io/%s", p.owner, name),
	}, nil
}

// Fetch returns the text files at the repository root.
func (p *Publisher) Fetch(ctx context.Context, repoURL string) (domain.ArtifactSet, error) {
	name, err := repoNameFromURL(repoURL)
	if err != nil {
		return nil, err
	}

	var entries []fileContent
	listPath := fmt.Sprintf("/repos/%s/%s/contents/?ref=%s", p.owner, name, url.QueryEscape(p.branch))
	if err := p.client.do(ctx, http.MethodGet, listPath, nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to list repository contents: %w", err)
	}

	artifacts := make(domain.ArtifactSet)
	for _, entry := range entries {
		if entry.Type != "file" {
			continue
		}
		file, err := p.getFile(ctx, name, entry.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch file %q: %w", entry.Path, err)
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("failed to decode file %q: %w", entry.Path, err)
		}
		artifacts[entry.Path] = string(decoded)
	}

	return artifacts, nil
}

// putFile creates or updates a single file via the contents API. A
// non-empty sha updates the existing blob; an empty sha creates the file.
func (p *Publisher) putFile(ctx context.Context, repo, path, content, sha string) error {
	body := map[string]interface{}{
		"message": fmt.Sprintf("Add %s", path),
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"branch":  p.branch,
	}
	if sha != "" {
		body["message"] = fmt.Sprintf("Update %s", path)
		body["sha"] = sha
	}

	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s", p.owner, repo, escapePath(path))
	return p.client.do(ctx, http.MethodPut, apiPath, body, nil)
}

// getFile reads a single file's metadata and base64 content.
func (p *Publisher) getFile(ctx context.Context, repo, path string) (*fileContent, error) {
	var file fileContent
	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s?ref=%s",
		p.owner, repo, escapePath(path), url.QueryEscape(p.branch))
	if err := p.client.do(ctx, http.MethodGet, apiPath, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// headCommit returns the SHA of the branch HEAD.
func (p *Publisher) headCommit(ctx context.Context, repo string) (string, error) {
	var commit struct {
		SHA string `json:"sha"`
	}
	apiPath := fmt.Sprintf("/repos/%s/%s/commits/%s", p.owner, repo, url.QueryEscape(p.branch))
	if err := p.client.do(ctx, http.MethodGet, apiPath, nil, &commit); err != nil {
		return "", err
	}
	return commit.SHA, nil
}

// repoNameFromURL extracts the repository name from a repository URL such
// as https://github.com/owner/name.
func repoNameFromURL(repoURL string) (string, error) {
	parsed, err := url.Parse(repoURL)
	if err != nil {
		return "", fmt.Errorf("invalid repository URL %q: %w", repoURL, err)
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("repository URL %q has no owner/name path", repoURL)
	}
	return parts[1], nil
}

// escapePath escapes each segment of a repo-relative file path.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
