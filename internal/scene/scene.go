// Package scene owns the geometry the field is painted on: three
// axis-aligned planes and a sphere, seen through a perspective camera.
package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sky is drawn wherever a ray misses every visible surface.
var Sky = color.RGBA{R: 135, G: 206, B: 235, A: 255}

const (
	// HalfSize is half the edge length of each square plane.
	HalfSize = 5.0
	// MaxOffset bounds how far a plane may be moved along its normal.
	MaxOffset = 5.0
	// hitEpsilon rejects self-intersections at the ray origin.
	hitEpsilon = 1e-9
)

// Axis names a plane by its normal.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// Plane is the square |u|,|v| <= HalfSize lying at coordinate Offset along Axis.
type Plane struct {
	Offset  float64
	Visible bool
}

// Scene lists the surfaces. It is a value type; copy it freely between frames.
type Scene struct {
	Planes        [3]Plane
	SphereRadius  float64
	SphereVisible bool
}

// Default shows all three planes through the origin and hides a unit sphere.
func Default() Scene {
	return Scene{
		Planes: [3]Plane{
			{Offset: 0, Visible: true},
			{Offset: 0, Visible: true},
			{Offset: 0, Visible: true},
		},
		SphereRadius: 1,
	}
}

// Hit returns the nearest visible surface point along origin + t·dir for
// 0 < t <= maxT. dir does not need to be normalized, but maxT is measured in
// units of |dir|.
func (s *Scene) Hit(origin, dir mgl64.Vec3, maxT float64) (mgl64.Vec3, bool) {
	best := maxT
	found := false
	for axis, plane := range s.Planes {
		if !plane.Visible || dir[axis] == 0 {
			continue
		}
		t := (plane.Offset - origin[axis]) / dir[axis]
		if t <= hitEpsilon || t > best {
			continue
		}
		p := origin.Add(dir.Mul(t))
		u, v := (axis+1)%3, (axis+2)%3
		if math.Abs(p[u]) > HalfSize || math.Abs(p[v]) > HalfSize {
			continue
		}
		best, found = t, true
	}
	if s.SphereVisible && s.SphereRadius > 0 {
		if t, ok := sphereHit(origin, dir, s.SphereRadius); ok && t <= best {
			best, found = t, true
		}
	}
	if !found {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(best)), true
}

// sphereHit intersects with the origin-centred sphere of radius r.
func sphereHit(origin, dir mgl64.Vec3, r float64) (float64, bool) {
	a := dir.Dot(dir)
	b := origin.Dot(dir)
	c := origin.Dot(origin) - r*r
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := (-b - sq) / a; t > hitEpsilon {
		return t, true
	}
	if t := (-b + sq) / a; t > hitEpsilon {
		return t, true
	}
	return 0, false
}

// SetPlaneOffset moves a plane, clamped to ±MaxOffset.
func (s *Scene) SetPlaneOffset(axis Axis, offset float64) {
	s.Planes[axis].Offset = math.Max(-MaxOffset, math.Min(MaxOffset, offset))
}

// TogglePlane flips a plane's visibility.
func (s *Scene) TogglePlane(axis Axis) {
	s.Planes[axis].Visible = !s.Planes[axis].Visible
}
