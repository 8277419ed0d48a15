package wavefield

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxSources is the fixed capacity of a SourceSet. It matches the uniform
// array length declared in the fragment shader and the OpenCL kernel.
const MaxSources = 100

// Arrangement selects how source positions are laid out.
type Arrangement int

const (
	// Line places the sources evenly along the x axis, centred on the origin.
	Line Arrangement = iota
	// Ring places the sources on a circle in the z = 0 plane.
	Ring
)

func (a Arrangement) String() string {
	switch a {
	case Line:
		return "line"
	case Ring:
		return "ring"
	}
	return fmt.Sprintf("arrangement(%d)", int(a))
}

// ParseArrangement accepts "line" or "ring" (case insensitive).
func ParseArrangement(s string) (Arrangement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "ring":
		return Ring, nil
	}
	return Line, fmt.Errorf("unknown arrangement %q (want line or ring)", s)
}

// padPosition and padAmplitude fill the slots past the active count.
var (
	padPosition  = mgl64.Vec3{0, 0, 0}
	padAmplitude = complex(1, 0)
)

// SourceSet holds the positions and complex amplitudes of up to MaxSources
// point emitters. Only the first Count entries contribute to the field; the
// rest are neutral padding so fixed-length consumers never read garbage.
type SourceSet struct {
	Count      int
	Positions  [MaxSources]mgl64.Vec3
	Amplitudes [MaxSources]complex128
}

// Generate builds a complete SourceSet. The phase of source i is always
// m·2πi/count, the ring azimuth, whichever arrangement positions it.
// Counts outside [0, MaxSources] are clamped; no other validation happens.
func Generate(count int, arrangement Arrangement, extent float64, m int) SourceSet {
	if count < 0 {
		count = 0
	} else if count > MaxSources {
		count = MaxSources
	}
	set := SourceSet{Count: count}
	i := 0
	for ; i < count; i++ {
		phi := 2 * math.Pi * float64(i) / float64(count)
		set.Positions[i] = sourcePosition(i, count, arrangement, extent, phi)
		set.Amplitudes[i] = cmplx.Rect(1, float64(m)*phi)
	}
	for ; i < MaxSources; i++ {
		set.Positions[i] = padPosition
		set.Amplitudes[i] = padAmplitude
	}
	return set
}

func sourcePosition(i, count int, arrangement Arrangement, extent, phi float64) mgl64.Vec3 {
	if arrangement == Line {
		if count == 1 {
			return mgl64.Vec3{0, 0, 0}
		}
		return mgl64.Vec3{extent * (float64(i)/float64(count-1) - 0.5), 0, 0}
	}
	r := 0.5 * extent
	return mgl64.Vec3{r * math.Cos(phi), r * math.Sin(phi), 0}
}

// Active returns the contributing positions and amplitudes.
func (s *SourceSet) Active() ([]mgl64.Vec3, []complex128) {
	return s.Positions[:s.Count], s.Amplitudes[:s.Count]
}

// Float32Positions flattens all MaxSources positions to xyz triples, padding
// included, for shader uniforms.
func (s *SourceSet) Float32Positions(stride int) []float32 {
	out := make([]float32, MaxSources*stride)
	for i, p := range s.Positions {
		base := i * stride
		out[base] = float32(p.X())
		out[base+1] = float32(p.Y())
		out[base+2] = float32(p.Z())
	}
	return out
}

// Float32Amplitudes flattens all MaxSources amplitudes to (re, im) pairs.
func (s *SourceSet) Float32Amplitudes() []float32 {
	out := make([]float32, MaxSources*2)
	for i, a := range s.Amplitudes {
		out[2*i] = float32(real(a))
		out[2*i+1] = float32(imag(a))
	}
	return out
}
