package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/appforge-api/internal/config"
	"github.com/phrazzld/appforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub is an in-memory stand-in for the subset of the GitHub REST
// API the publisher touches. Files are stored per repository per branch.
type fakeGitHub struct {
	mu          sync.Mutex
	owner       string
	repos       map[string]map[string]map[string]string // repo -> branch -> path -> content
	commits     int
	pagesCalls  []string // "<repo>:<branch>:<path>"
	rejectPages func(branch, path string) bool
	server      *httptest.Server
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{
		owner: "testowner",
		repos: make(map[string]map[string]map[string]string),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGitHub) publisher(t *testing.T) *Publisher {
	t.Helper()
	p, err := NewPublisher(slog.Default(), config.GitHubConfig{
		Token:   "test-token",
		Owner:   f.owner,
		APIBase: f.server.URL,
		Branch:  "main",
	})
	require.NoError(t, err)
	return p
}

func (f *fakeGitHub) files(repo, branch string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string)
	for path, content := range f.repos[repo][branch] {
		out[path] = content
	}
	return out
}

func (f *fakeGitHub) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	writeJSON := func(status int, v interface{}) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	notFound := func() { writeJSON(http.StatusNotFound, map[string]string{"message": "Not Found"}) }

	if r.Header.Get("Authorization") != "Bearer test-token" {
		writeJSON(http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/user/repos":
		var req struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.repos[req.Name] = map[string]map[string]string{"main": {}}
		writeJSON(http.StatusCreated, map[string]string{
			"name":     req.Name,
			"html_url": "https://github.com/" + f.owner + "/" + req.Name,
		})

	case strings.HasPrefix(r.URL.Path, "/repos/"):
		parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/repos/"), "/", 3)
		if len(parts) < 3 {
			notFound()
			return
		}
		repo, rest := parts[1], parts[2]
		branches, ok := f.repos[repo]
		if !ok {
			notFound()
			return
		}

		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(rest, "commits/"):
			f.commits++
			writeJSON(http.StatusOK, map[string]string{"sha": fmt.Sprintf("sha-%d", f.commits)})

		case r.Method == http.MethodPost && rest == "git/refs":
			var req struct {
				Ref string `json:"ref"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			branch := strings.TrimPrefix(req.Ref, "refs/heads/")
			branches[branch] = map[string]string{}
			writeJSON(http.StatusCreated, map[string]string{"ref": req.Ref})

		case r.Method == http.MethodPost && rest == "pages":
			var req struct {
				Source struct {
					Branch string `json:"branch"`
					Path   string `json:"path"`
				} `json:"source"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if f.rejectPages != nil && f.rejectPages(req.Source.Branch, req.Source.Path) {
				writeJSON(http.StatusUnprocessableEntity, map[string]string{"message": "pages rejected"})
				return
			}
			f.pagesCalls = append(f.pagesCalls, repo+":"+req.Source.Branch+":"+req.Source.Path)
			writeJSON(http.StatusCreated, map[string]string{"status": "built"})

		case strings.HasPrefix(rest, "contents/"):
			path := strings.TrimPrefix(rest, "contents/")
			branch := r.URL.Query().Get("ref")
			if branch == "" {
				branch = "main"
			}

			switch r.Method {
			case http.MethodPut:
				var req struct {
					Content string `json:"content"`
					Branch  string `json:"branch"`
				}
				_ = json.NewDecoder(r.Body).Decode(&req)
				if req.Branch != "" {
					branch = req.Branch
				}
				decoded, _ := base64.StdEncoding.DecodeString(req.Content)
				if branches[branch] == nil {
					notFound()
					return
				}
				branches[branch][path] = string(decoded)
				writeJSON(http.StatusCreated, map[string]string{"status": "ok"})

			case http.MethodGet:
				files := branches[branch]
				if path == "" {
					// Root listing: top-level files only.
					var entries []map[string]string
					for p := range files {
						if strings.Contains(p, "/") {
							continue
						}
						entries = append(entries, map[string]string{
							"name": p, "path": p, "type": "file",
						})
					}
					writeJSON(http.StatusOK, entries)
					return
				}
				content, ok := files[path]
				if !ok {
					notFound()
					return
				}
				writeJSON(http.StatusOK, map[string]string{
					"name":     path,
					"path":     path,
					"type":     "file",
					"sha":      "blob-" + path,
					"content":  base64.StdEncoding.EncodeToString([]byte(content)),
					"encoding": "base64",
				})

			default:
				notFound()
			}

		default:
			notFound()
		}

	default:
		notFound()
	}
}

func TestCreatePublishesArtifacts(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t)
	p := fake.publisher(t)

	artifacts := domain.ArtifactSet{
		"index.html": "<html>app</html>",
		"README.md":  "# App",
	}
	result, err := p.Create(context.Background(), "t1-abcd1234", artifacts)
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/testowner/t1-abcd1234", result.RepoURL)
	assert.Equal(t, "https://testowner.github.io/t1-abcd1234", result.PagesURL)
	assert.NotEmpty(t, result.CommitSHA)

	files := fake.files("t1-abcd1234", "main")
	assert.Equal(t, "<html>app</html>", files["index.html"])
	assert.Equal(t, "# App", files["README.md"])
	assert.Equal(t, "<html>app</html>", files["docs/index.html"],
		"docs folder strategy should mirror the entry point")
	require.Len(t, fake.pagesCalls, 1)
	assert.Equal(t, "t1-abcd1234:main:/docs", fake.pagesCalls[0])
}

// Merge law: update({a: X}) after create({a: Y, b: Z}) leaves {a: X, b: Z}.
func TestUpdateMergesArtifacts(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t)
	p := fake.publisher(t)
	ctx := context.Background()

	created, err := p.Create(ctx, "merge-law", domain.ArtifactSet{
		"index.html": "Y",
		"README.md":  "Z",
	})
	require.NoError(t, err)

	updated, err := p.Update(ctx, created.RepoURL, domain.ArtifactSet{
		"index.html": "X",
		"NEW.md":     "W",
	})
	require.NoError(t, err)
	assert.Equal(t, created.RepoURL, updated.RepoURL)

	fetched, err := p.Fetch(ctx, created.RepoURL)
	require.NoError(t, err)
	assert.Equal(t, "X", fetched["index.html"], "same-named file must be updated")
	assert.Equal(t, "Z", fetched["README.md"], "file absent from overlay must survive")
	assert.Equal(t, "W", fetched["NEW.md"], "new file must be created")
}

func TestUpdateUnknownRepo(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t)
	p := fake.publisher(t)

	_, err := p.Update(context.Background(), "https://github.com/testowner/never-created",
		domain.ArtifactSet{"index.html": "X"})
	assert.Error(t, err)
}

// When the docs strategy is rejected, the gh-pages branch strategy runs.
func TestPagesStrategyFallback(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t)
	fake.rejectPages = func(branch, path string) bool { return path == "/docs" }
	p := fake.publisher(t)

	_, err := p.Create(context.Background(), "fallback-repo", domain.ArtifactSet{
		"index.html": "<html>app</html>",
	})
	require.NoError(t, err)

	require.Len(t, fake.pagesCalls, 1)
	assert.Equal(t, "fallback-repo:gh-pages:/", fake.pagesCalls[0])
	assert.Equal(t, "<html>app</html>", fake.files("fallback-repo", "gh-pages")["index.html"])
}

// Exhaustion of every serving strategy is non-fatal: the repository is
// still published and a result returned.
func TestPagesExhaustionNonFatal(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t)
	fake.rejectPages = func(string, string) bool { return true }
	p := fake.publisher(t)

	result, err := p.Create(context.Background(), "no-pages", domain.ArtifactSet{
		"index.html": "<html>app</html>",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.PagesURL, "an address is returned even if serving is not live")
	assert.Contains(t, fake.files("no-pages", "main"), ".nojekyll",
		"nojekyll marker strategy should have run")
}

func TestRepoNameFromURL(t *testing.T) {
	t.Parallel()

	name, err := repoNameFromURL("https://github.com/owner/my-repo")
	require.NoError(t, err)
	assert.Equal(t, "my-repo", name)

	_, err = repoNameFromURL("https://github.com/owner")
	assert.Error(t, err)
}

func TestNewPublisherValidation(t *testing.T) {
	t.Parallel()

	_, err := NewPublisher(slog.Default(), config.GitHubConfig{Owner: "o"})
	assert.Error(t, err, "missing token must be rejected")

	_, err = NewPublisher(slog.Default(), config.GitHubConfig{Token: "t"})
	assert.Error(t, err, "missing owner must be rejected")
}
