// Package domain contains the core entities of the build pipeline:
// submitted build tasks, the artifacts they produce, publish results,
// and the per-task round records that link round 2 back to round 1.
// Entities validate themselves; they have no dependencies on transport,
// storage, or collaborator packages.
package domain
