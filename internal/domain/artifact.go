package domain

// PrimaryArtifact is the servable entry point every artifact set must carry.
const PrimaryArtifact = "index.html"

// ArtifactSet maps file names to text content. Round-1 sets are complete;
// round-2 sets are partial overlays merged into the existing repository.
type ArtifactSet map[string]string

// Clone returns an independent copy of the artifact set.
func (a ArtifactSet) Clone() ArtifactSet {
	out := make(ArtifactSet, len(a))
	for name, content := range a {
		out[name] = content
	}
	return out
}

// Merge overlays the given set onto this one: same-named entries are
// replaced, new entries are added, and entries absent from the overlay
// survive untouched.
func (a ArtifactSet) Merge(overlay ArtifactSet) ArtifactSet {
	merged := a.Clone()
	for name, content := range overlay {
		merged[name] = content
	}
	return merged
}

// HasPrimary reports whether the set contains the servable entry point.
func (a ArtifactSet) HasPrimary() bool {
	_, ok := a[PrimaryArtifact]
	return ok
}

// PublishResult describes a completed repository publish. It is immutable
// once returned and is echoed verbatim into the notification payload.
type PublishResult struct {
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}
