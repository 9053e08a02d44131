// Package mesh reads the vertex-level content of Wavefront OBJ files.
//
// Only what joint placement needs is parsed: vertex positions and named
// groups. Faces, normals, texture coordinates and materials are skipped.
// Fingerprint produces the short content hash used to detect that a mesh
// was re-exported after selections or joints were authored against it.
package mesh
