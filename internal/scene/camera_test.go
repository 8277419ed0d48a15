package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestVerticalFOV(t *testing.T) {
	c := DefaultCamera()
	c.FOV = 90
	if got := c.VerticalFOV(0.5); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("portrait: got %v", got)
	}
	if got, want := c.VerticalFOV(2), 2*math.Atan(0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("landscape: got %v want %v", got, want)
	}
}

func TestCentreRayHitsTarget(t *testing.T) {
	c := DefaultCamera()
	c.Position = mgl64.Vec3{0, 0, 20}
	// Odd size so a pixel centre sits on the optical axis.
	v := c.View(101, 101)
	s := Default()
	p, ok := v.Surface(&s, 50, 50)
	if !ok || p.Len() > 1e-9 {
		t.Fatalf("got %v %v", p, ok)
	}
}

func TestRayOrientation(t *testing.T) {
	c := DefaultCamera()
	c.Position = mgl64.Vec3{0, 0, 20}
	v := c.View(200, 100)
	left := v.Ray(0, 50)
	top := v.Ray(100, 0)
	if left.X() >= 0 {
		t.Errorf("left column should point to -x: %v", left)
	}
	if top.Y() <= 0 {
		t.Errorf("top row should point to +y: %v", top)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	v := DefaultCamera().View(320, 240)
	s := Default()
	for _, px := range [][2]int{{160, 120}, {40, 200}, {300, 10}} {
		p, ok := v.Surface(&s, px[0], px[1])
		if !ok {
			continue
		}
		x, y, ok := v.Project(p)
		if !ok || math.Abs(x-float64(px[0])-0.5) > 1e-6 || math.Abs(y-float64(px[1])-0.5) > 1e-6 {
			t.Errorf("pixel %v projected back to (%v, %v)", px, x, y)
		}
	}
	if _, _, ok := v.Project(DefaultCamera().Position.Mul(2)); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestPointAlongZ(t *testing.T) {
	c := DefaultCamera()
	r := c.Position.Len()
	c.PointAlongZ(false)
	if math.Abs(c.Position.Z()+r) > 1e-12 || c.Position.X() != 0 || c.Position.Y() != 0 {
		t.Fatalf("got %v", c.Position)
	}
	v := c.View(64, 64)
	if v.Forward.Z() <= 0 {
		t.Fatalf("backward camera should look towards +z: %v", v.Forward)
	}
}
