// Package gemini implements the generation.Generator interface using
// Google's Gemini API. Backend failure is never surfaced to the pipeline:
// any error, timeout, or unusable response degrades to the deterministic
// fallback library in the generation package.
package gemini
