// Package joint places and removes named rig joints.
//
// It resolves template slots, places joints at the centroid of the current
// vertex selection, mirrors them across the character midline and records
// placement state via the domain.RigStore.
package joint
