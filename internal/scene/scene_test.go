package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestHitPlanes(t *testing.T) {
	s := Default()
	tests := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		want   mgl64.Vec3
		ok     bool
	}{
		{"z plane head on", mgl64.Vec3{0, 0, 20}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 0}, true},
		{"x plane", mgl64.Vec3{10, 1, 2}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 2}, true},
		{"outside the square", mgl64.Vec3{10, 6, 2}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{}, false},
		{"pointing away", mgl64.Vec3{0, 0, 20}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}, false},
		{"nearest of several", mgl64.Vec3{3, 3, 20}, mgl64.Vec3{-0.1, -0.1, -1}, mgl64.Vec3{1, 1, 0}, true},
	}
	for _, tt := range tests {
		got, ok := s.Hit(tt.origin, tt.dir, 100)
		if ok != tt.ok || (ok && got.Sub(tt.want).Len() > 1e-9) {
			t.Errorf("%s: got %v, %v want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHitRespectsVisibilityAndOffset(t *testing.T) {
	s := Default()
	s.TogglePlane(AxisZ)
	if _, ok := s.Hit(mgl64.Vec3{0.5, 0.5, 20}, mgl64.Vec3{0, 0, -1}, 100); ok {
		t.Fatal("hidden z plane was hit")
	}
	s.TogglePlane(AxisZ)
	s.SetPlaneOffset(AxisZ, 2.5)
	got, ok := s.Hit(mgl64.Vec3{0.5, 0.5, 20}, mgl64.Vec3{0, 0, -1}, 100)
	if !ok || got.Z() != 2.5 {
		t.Fatalf("got %v %v", got, ok)
	}
	s.SetPlaneOffset(AxisZ, 12)
	if s.Planes[AxisZ].Offset != MaxOffset {
		t.Fatalf("offset not clamped: %v", s.Planes[AxisZ].Offset)
	}
}

func TestHitFarClip(t *testing.T) {
	s := Default()
	if _, ok := s.Hit(mgl64.Vec3{0.5, 0.5, 60}, mgl64.Vec3{0, 0, -1}, 50); ok {
		t.Fatal("hit beyond the far plane")
	}
}

func TestHitSphere(t *testing.T) {
	s := Default()
	s.Planes = [3]Plane{}
	s.SphereVisible = true
	s.SphereRadius = 2
	got, ok := s.Hit(mgl64.Vec3{0, 0, 20}, mgl64.Vec3{0, 0, -1}, 100)
	if !ok || math.Abs(got.Z()-2) > 1e-9 {
		t.Fatalf("got %v %v", got, ok)
	}
	// From inside, the far wall is seen.
	got, ok = s.Hit(mgl64.Vec3{0, 0, 0.5}, mgl64.Vec3{0, 0, -1}, 100)
	if !ok || math.Abs(got.Z()+2) > 1e-9 {
		t.Fatalf("inside: got %v %v", got, ok)
	}
}

func TestSphereOccludesPlane(t *testing.T) {
	s := Default()
	s.SphereVisible = true
	s.SphereRadius = 1
	got, ok := s.Hit(mgl64.Vec3{0, 0, 20}, mgl64.Vec3{0, 0, -1}, 100)
	if !ok || math.Abs(got.Z()-1) > 1e-9 {
		t.Fatalf("got %v %v", got, ok)
	}
}
