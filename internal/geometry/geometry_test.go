package geometry_test

import (
	"testing"

	"autorig/internal/domain"
	"autorig/internal/geometry"
)

const eps = 1e-4

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func nearVec(a, b domain.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestCentroid_MeanOfSelection(t *testing.T) {
	pts := []domain.Vector3{
		domain.Vec3(1, 0, 0),
		domain.Vec3(-1, 2, 0),
		domain.Vec3(0, 4, 3),
	}
	c, err := geometry.Centroid(pts)
	if err != nil {
		t.Fatalf("Centroid: %v", err)
	}
	want := domain.Vec3(0, 2, 1)
	if !nearVec(c, want) {
		t.Fatalf("centroid = %v, want %v", c, want)
	}
}

func TestCentroid_SinglePoint(t *testing.T) {
	p := domain.Vec3(3.5, -2, 0.25)
	c, err := geometry.Centroid([]domain.Vector3{p})
	if err != nil {
		t.Fatalf("Centroid: %v", err)
	}
	if !nearVec(c, p) {
		t.Fatalf("centroid of one point = %v, want %v", c, p)
	}
}

func TestCentroid_Empty(t *testing.T) {
	if _, err := geometry.Centroid(nil); err != geometry.ErrNoPoints {
		t.Fatalf("want ErrNoPoints, got %v", err)
	}
}

func TestSpanPoints_DefaultSpineSpacing(t *testing.T) {
	pelvis := domain.Vec3(0, 0, 0)
	neck := domain.Vec3(0, 8, 0)

	pts := geometry.SpanPoints(pelvis, neck, 3)
	if len(pts) != 3 {
		t.Fatalf("want 3 points, got %d", len(pts))
	}
	// Step is delta/4 = 2 on Y; endpoints excluded.
	want := []domain.Vector3{
		domain.Vec3(0, 2, 0),
		domain.Vec3(0, 4, 0),
		domain.Vec3(0, 6, 0),
	}
	for i := range want {
		if !nearVec(pts[i], want[i]) {
			t.Fatalf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestSpanPoints_EvenGaps(t *testing.T) {
	from := domain.Vec3(1, -2, 4)
	to := domain.Vec3(-3, 7, 0.5)

	for _, n := range []int{1, 2, 5, 12} {
		pts := geometry.SpanPoints(from, to, n)
		if len(pts) != n {
			t.Fatalf("n=%d: got %d points", n, len(pts))
		}
		gap := pts[0].Distance(from)
		if gap <= 0 {
			t.Fatalf("n=%d: first gap not positive", n)
		}
		prev := pts[0]
		for i := 1; i < n; i++ {
			if g := pts[i].Distance(prev); !near(g, gap) {
				t.Fatalf("n=%d: gap %d = %g, want %g", n, i, g, gap)
			}
			prev = pts[i]
		}
		if g := to.Distance(prev); !near(g, gap) {
			t.Fatalf("n=%d: closing gap = %g, want %g", n, g, gap)
		}
	}
}

func TestSpanPoints_ExcludesEndpoints(t *testing.T) {
	from := domain.Vec3(0, 0, 0)
	to := domain.Vec3(10, 0, 0)
	for _, p := range geometry.SpanPoints(from, to, 4) {
		if nearVec(p, from) || nearVec(p, to) {
			t.Fatalf("endpoint %v leaked into span", p)
		}
	}
}

func TestSpanPoints_NoPoints(t *testing.T) {
	if pts := geometry.SpanPoints(domain.Vec3(0, 0, 0), domain.Vec3(1, 1, 1), 0); pts != nil {
		t.Fatalf("n=0: want nil, got %v", pts)
	}
	if pts := geometry.SpanPoints(domain.Vec3(0, 0, 0), domain.Vec3(1, 1, 1), -2); pts != nil {
		t.Fatalf("n<0: want nil, got %v", pts)
	}
}

func TestSpanPoints_CoincidentEndpoints(t *testing.T) {
	p := domain.Vec3(2, 2, 2)
	pts := geometry.SpanPoints(p, p, 3)
	if len(pts) != 3 {
		t.Fatalf("want 3 points, got %d", len(pts))
	}
	for i, q := range pts {
		if !nearVec(q, p) {
			t.Fatalf("point %d = %v, want %v", i, q, p)
		}
	}
}

func TestMirror_DominantX(t *testing.T) {
	m, axis, ok := geometry.Mirror(domain.Vec3(5, 3, 1))
	if !ok || axis != geometry.AxisYZ {
		t.Fatalf("want YZ mirror, got axis=%v ok=%v", axis, ok)
	}
	if !nearVec(m, domain.Vec3(-5, 3, 1)) {
		t.Fatalf("mirrored = %v, want (-5, 3, 1)", m)
	}
}

func TestMirror_DominantZ(t *testing.T) {
	m, axis, ok := geometry.Mirror(domain.Vec3(1, -2, -6))
	if !ok || axis != geometry.AxisXY {
		t.Fatalf("want XY mirror, got axis=%v ok=%v", axis, ok)
	}
	if !nearVec(m, domain.Vec3(1, -2, 6)) {
		t.Fatalf("mirrored = %v, want (1, -2, 6)", m)
	}
}

func TestMirror_FortyFiveDegreeSkip(t *testing.T) {
	p := domain.Vec3(2, 1, -2) // |X| == |Z|
	m, axis, ok := geometry.Mirror(p)
	if ok || axis != geometry.AxisNone {
		t.Fatalf("45° point must not mirror, got axis=%v ok=%v", axis, ok)
	}
	if !nearVec(m, p) {
		t.Fatalf("45° point changed: %v", m)
	}
}

func TestMirror_OriginSkip(t *testing.T) {
	if _, _, ok := geometry.Mirror(domain.Vec3(0, 4, 0)); ok {
		t.Fatal("point on the Y axis must not mirror")
	}
}
