// Package publish defines the repository-publishing boundary of the build
// pipeline. The Publisher interface separates the application core from
// the hosting provider, following the hexagonal architecture pattern.
package publish

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/appforge-api/internal/domain"
)

// Publisher creates, extends, and reads versioned repositories of build
// artifacts.
type Publisher interface {
	// Create publishes a new repository with the given name and artifact
	// set and makes a best-effort attempt to enable public serving.
	Create(ctx context.Context, name string, artifacts domain.ArtifactSet) (domain.PublishResult, error)

	// Update merges an artifact overlay into an existing repository:
	// same-named files are updated, missing ones created, and files absent
	// from the overlay are never deleted.
	Update(ctx context.Context, repoURL string, artifacts domain.ArtifactSet) (domain.PublishResult, error)

	// Fetch returns the text artifacts currently published at the
	// repository's root.
	Fetch(ctx context.Context, repoURL string) (domain.ArtifactSet, error)
}

// maxRepoNameLen is the hosting provider's repository name limit.
const maxRepoNameLen = 100

// RepoName derives a collision-resistant repository name from task
// identity plus a time-based salt, so repeated submissions of the same
// task ID do not collide. The result is a lowercase slug of the task ID
// joined to the first 8 hex chars of md5(taskID + round + timestamp).
func RepoName(taskID string, round domain.Round, now time.Time) string {
	salt := md5.Sum([]byte(fmt.Sprintf("%s-%d-%d", taskID, round, now.UnixNano())))
	suffix := hex.EncodeToString(salt[:])[:8]

	slug := slugify(taskID)
	if slug == "" {
		slug = "app"
	}

	if max := maxRepoNameLen - len(suffix) - 1; len(slug) > max {
		slug = strings.Trim(slug[:max], "-")
	}

	return slug + "-" + suffix
}

// slugify lowercases the input and collapses every run of
// non-alphanumeric characters to a single hyphen.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // strip leading hyphens
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
