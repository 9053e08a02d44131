package geometry

import "autorig/internal/domain"

// SpanPoints returns n points evenly distributed strictly between from and
// to. The gap between consecutive points, and between each endpoint and its
// nearest point, is (to-from)/(n+1), so the endpoints themselves are never
// included. This is the spine distribution rule: n spine joints between the
// pelvis and the neck.
//
// n <= 0 yields nil. Coincident endpoints yield n copies of the endpoint.
func SpanPoints(from, to domain.Vector3, n int) []domain.Vector3 {
	if n <= 0 {
		return nil
	}
	step := to.Sub(from).DivScalar(float32(n + 1))
	pts := make([]domain.Vector3, n)
	cur := from
	for i := 0; i < n; i++ {
		cur = cur.Add(step)
		pts[i] = cur
	}
	return pts
}
