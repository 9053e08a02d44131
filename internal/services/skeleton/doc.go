// Package skeleton links placed joints into bones and exports the hierarchy.
//
// It parents scene objects following the template bone pairs and the spine
// chain rule, and renders the resulting joint forest for export.
package skeleton
