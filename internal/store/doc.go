// Package store provides file-based persistence for a rig project.
//
// It contains the concrete implementation of the domain storage interfaces,
// serialising data as JSON under the project's .autorig directory. All
// methods are concurrency-safe via internal locking, and writes go through
// a temp file plus rename so a crash never leaves a half-written document.
//
// The package persists:
//   - the host-scene document (scene.json)
//   - the rig authoring state (rig.json)
//   - the last saved vertex selection (selection.json)
package store
