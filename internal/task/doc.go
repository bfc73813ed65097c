// Package task contains the deadline-bounded orchestration pipeline.
// The Orchestrator validates accepted build tasks, spawns one detached
// background operation per (task, round), sequences generation, publish,
// and notification under nested time ceilings, and routes round-1 versus
// round-2 logic through the round state store.
package task
