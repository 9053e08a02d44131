// Package scene implements the host-side scene: the loaded character mesh,
// the active vertex selection and the point objects rigging operations
// create. It is the file-backed stand-in for a DCC host's scene graph, so
// every mutation loads the scene document, applies the change and persists
// the result.
package scene
