package wavefield

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Amplitude returns the coherent sum of outgoing spherical waves from the
// active sources at world point p:
//
//	Σ A_i · e^{i(k·d_i − ωt)} / d_i,  d_i = |p − position_i|
//
// A point exactly on a source gives d_i = 0 and a non-finite result, which
// is passed through untouched.
func Amplitude(p mgl64.Vec3, sources *SourceSet, k, timePhase float64) complex128 {
	var re, im float64
	for i := 0; i < sources.Count; i++ {
		d := p.Sub(sources.Positions[i]).Len()
		s, c := math.Sincos(k*d - timePhase)
		a := sources.Amplitudes[i]
		ar, ai := real(a), imag(a)
		re += (ar*c - ai*s) / d
		im += (ar*s + ai*c) / d
	}
	return complex(re, im)
}

// Evaluate computes the field at p with the snapshot's sources and params.
func (s *Snapshot) Evaluate(p mgl64.Vec3) complex128 {
	return Amplitude(p, &s.Sources, s.Params.Wavenumber, s.Params.TimePhase)
}
