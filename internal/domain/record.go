package domain

// RoundRecord captures the outcome of round 1 for a task so round 2 can
// locate and extend the same repository. Records are written once at the
// end of round 1, read during round 2, and never mutated or deleted; they
// live for the process lifetime only.
type RoundRecord struct {
	RepoURL string
	Brief   string
	Email   string
}
