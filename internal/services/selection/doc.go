// Package selection manages the active vertex selection.
//
// It validates indices against the loaded mesh, resolves OBJ group names and
// persists the result via the domain.SelectionStore, pinned to the mesh
// fingerprint so selections that predate a re-export can be flagged.
package selection
