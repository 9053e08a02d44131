package domain

import "errors"

// Contract errors of the SceneHost interface. Implementations return these
// so callers can branch on the condition without knowing the host kind.
var (
	// ErrNoScene reports that no mesh has been loaded into the project.
	ErrNoScene = errors.New("no scene loaded")
	// ErrEmptyMesh reports a mesh with no vertices.
	ErrEmptyMesh = errors.New("mesh has no vertices")
	// ErrVertexRange reports a selection index outside the mesh.
	ErrVertexRange = errors.New("vertex index out of range")
	// ErrUnknownGroup reports a vertex group name that does not exist.
	ErrUnknownGroup = errors.New("unknown vertex group")
	// ErrObjectExists reports a scene object name collision.
	ErrObjectExists = errors.New("scene object already exists")
	// ErrObjectNotFound reports a scene object name that resolves to nothing.
	ErrObjectNotFound = errors.New("scene object not found")
	// ErrParentCycle reports a reparent that would loop the hierarchy.
	ErrParentCycle = errors.New("parenting would create a cycle")
)
