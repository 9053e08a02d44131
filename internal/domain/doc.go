// Package domain defines the core types and interfaces shared across autorig.
//
// The model mirrors a DCC host scene: a Scene holds the character mesh
// vertices, named groups, the active vertex selection and the point objects
// (joints) created in it. A Rig tracks authoring state per template slot
// (the indicator light, the placed position and the mirrored twin) plus the
// spine configuration. Stores persist these documents; services implement
// the rigging operations on top of them.
package domain
