// Package spine builds and resizes the spine joint chain.
//
// It spaces joints evenly between the placed Pelvis and Neck, rebuilds the
// chain whenever the count changes and records the result via the
// domain.RigStore.
package spine
