package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a pinhole camera looking at Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	// FOV is the larger of the horizontal and vertical fields of view, in degrees.
	FOV  float64
	Near float64
	Far  float64
}

// DefaultCamera sits 20 units out on an oblique axis so all three planes show.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{11, 8, 15},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      68,
		Near:     0.0001,
		Far:      50,
	}
}

// VerticalFOV returns the vertical field of view in radians for the aspect
// ratio, keeping FOV on the longer screen axis.
func (c Camera) VerticalFOV(aspect float64) float64 {
	fov := mgl64.DegToRad(c.FOV)
	if aspect > 1 {
		return 2 * math.Atan(math.Tan(0.5*fov)/aspect)
	}
	return fov
}

// PointAlongZ moves the camera onto the z axis at its current distance from
// the target, in front (+z, looking towards -z) or behind.
func (c *Camera) PointAlongZ(forward bool) {
	r := c.Position.Sub(c.Target).Len()
	if !forward {
		r = -r
	}
	c.Position = c.Target.Add(mgl64.Vec3{0, 0, r})
}

// View is the per-frame projection state derived from a Camera.
type View struct {
	Width, Height int
	Origin        mgl64.Vec3
	// Forward, Right and Up are scaled so that Forward + x·Right + y·Up
	// points through normalized device coordinates (x, y).
	Forward, Right, Up mgl64.Vec3
	Far                float64

	viewMatrix, projection mgl64.Mat4
}

// View prepares ray generation for a width×height framebuffer.
func (c Camera) View(width, height int) View {
	aspect := float64(width) / float64(height)
	vfov := c.VerticalFOV(aspect)
	forward := c.Target.Sub(c.Position).Normalize()
	up := c.Up
	if math.Abs(forward.Dot(up.Normalize())) > 0.999999 {
		up = mgl64.Vec3{0, 0, -1}
	}
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)
	tanV := math.Tan(0.5 * vfov)
	return View{
		Width:      width,
		Height:     height,
		Origin:     c.Position,
		Forward:    forward,
		Right:      right.Mul(tanV * aspect),
		Up:         trueUp.Mul(tanV),
		Far:        c.Far,
		viewMatrix: mgl64.LookAtV(c.Position, c.Target, trueUp),
		projection: mgl64.Perspective(vfov, aspect, c.Near, c.Far),
	}
}

// Ray returns the unnormalized direction through the centre of pixel (px, py),
// with y growing downwards.
func (v *View) Ray(px, py int) mgl64.Vec3 {
	x := 2*(float64(px)+0.5)/float64(v.Width) - 1
	y := 1 - 2*(float64(py)+0.5)/float64(v.Height)
	return v.Forward.Add(v.Right.Mul(x)).Add(v.Up.Mul(y))
}

// Surface returns the world-space point seen through pixel (px, py).
func (v *View) Surface(s *Scene, px, py int) (mgl64.Vec3, bool) {
	dir := v.Ray(px, py).Normalize()
	return s.Hit(v.Origin, dir, v.Far)
}

// Project maps a world point to pixel coordinates (y down). ok is false for
// points behind the camera.
func (v *View) Project(p mgl64.Vec3) (x, y float64, ok bool) {
	if p.Sub(v.Origin).Dot(v.Forward) <= 0 {
		return 0, 0, false
	}
	win := mgl64.Project(p, v.viewMatrix, v.projection, 0, 0, v.Width, v.Height)
	return win.X(), float64(v.Height) - win.Y(), true
}
