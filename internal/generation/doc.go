// Package generation defines the content-generation boundary of the build
// pipeline. The Generator interface separates the application core from
// the external LLM service, following the hexagonal architecture pattern.
// The package also owns the deterministic fallback artifact library used
// when generation fails or times out: generation failure degrades to
// canned content, it is never fatal to a round.
package generation
