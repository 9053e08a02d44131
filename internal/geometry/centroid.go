package geometry

import (
	"errors"

	"autorig/internal/domain"
)

// ErrNoPoints is returned when a placement is requested for an empty set.
var ErrNoPoints = errors.New("no points to average")

// Centroid returns the arithmetic mean of the given points, the placement
// rule for a joint created from a vertex selection.
func Centroid(points []domain.Vector3) (domain.Vector3, error) {
	if len(points) == 0 {
		return domain.Vector3{}, ErrNoPoints
	}
	var sx, sy, sz float64
	for _, p := range points {
		sx += float64(p.X)
		sy += float64(p.Y)
		sz += float64(p.Z)
	}
	n := float64(len(points))
	return domain.Vec3(float32(sx/n), float32(sy/n), float32(sz/n)), nil
}
