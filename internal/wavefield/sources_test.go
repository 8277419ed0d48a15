package wavefield

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-9

// closeVec compares by absolute distance; mgl64's relative comparison
// rejects tiny residues such as cos(π/2) against an exact 0.
func closeVec(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < tol
}

func TestGeneratePadding(t *testing.T) {
	for _, arr := range []Arrangement{Line, Ring} {
		for n := 1; n <= MaxSources; n++ {
			set := Generate(n, arr, 3, 2)
			if set.Count != n {
				t.Fatalf("%v n=%d: count %d", arr, n, set.Count)
			}
			if len(set.Positions) != MaxSources || len(set.Amplitudes) != MaxSources {
				t.Fatalf("capacity changed")
			}
			for i := n; i < MaxSources; i++ {
				if set.Positions[i] != padPosition || set.Amplitudes[i] != padAmplitude {
					t.Fatalf("%v n=%d: slot %d not padding: %v %v", arr, n, i, set.Positions[i], set.Amplitudes[i])
				}
			}
		}
	}
}

func TestGenerateLineSingleSourceAtOrigin(t *testing.T) {
	for _, extent := range []float64{0, 1, 7.5} {
		set := Generate(1, Line, extent, 3)
		if set.Positions[0] != (mgl64.Vec3{}) {
			t.Errorf("extent %v: got %v", extent, set.Positions[0])
		}
	}
}

func TestGenerateLineSpacing(t *testing.T) {
	set := Generate(4, Line, 2, 0)
	want := []float64{-1, -1.0 / 3, 1.0 / 3, 1}
	for i, x := range want {
		if !closeVec(set.Positions[i], mgl64.Vec3{x, 0, 0}) {
			t.Errorf("source %d: got %v want x=%v", i, set.Positions[i], x)
		}
	}
}

func TestGenerateRing(t *testing.T) {
	set := Generate(4, Ring, 2, 0)
	want := []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, -1, 0}}
	for i, p := range want {
		if !closeVec(set.Positions[i], p) {
			t.Errorf("source %d: got %v want %v", i, set.Positions[i], p)
		}
	}
}

func TestGenerateRingOnCircle(t *testing.T) {
	for _, n := range []int{3, 7, 64, MaxSources} {
		set := Generate(n, Ring, 5, 0)
		for i := 0; i < n; i++ {
			p := set.Positions[i]
			if math.Abs(p.Len()-2.5) > tol || p.Z() != 0 {
				t.Fatalf("n=%d source %d: %v not on the radius 2.5 circle", n, i, p)
			}
			phi := 2 * math.Pi * float64(i) / float64(n)
			if !closeVec(p, mgl64.Vec3{2.5 * math.Cos(phi), 2.5 * math.Sin(phi), 0}) {
				t.Fatalf("n=%d source %d: got %v at angle %v", n, i, p, phi)
			}
		}
	}
}

func TestGeneratePhaseWindingIgnoresArrangement(t *testing.T) {
	for _, arr := range []Arrangement{Line, Ring} {
		set := Generate(8, arr, 5, 2)
		for i := 0; i < 8; i++ {
			phi := 2 * 2 * math.Pi * float64(i) / 8
			want := complex(math.Cos(phi), math.Sin(phi))
			if cmplx.Abs(set.Amplitudes[i]-want) > tol {
				t.Errorf("%v source %d: got %v want %v", arr, i, set.Amplitudes[i], want)
			}
			if math.Abs(cmplx.Abs(set.Amplitudes[i])-1) > tol {
				t.Errorf("%v source %d: magnitude %v", arr, i, cmplx.Abs(set.Amplitudes[i]))
			}
		}
	}
}

func TestGenerateNegativeMode(t *testing.T) {
	pos := Generate(6, Ring, 1, 1)
	neg := Generate(6, Ring, 1, -1)
	for i := 0; i < 6; i++ {
		if cmplx.Abs(neg.Amplitudes[i]-cmplx.Conj(pos.Amplitudes[i])) > tol {
			t.Errorf("source %d: m=-1 should conjugate m=1", i)
		}
	}
}

func TestGenerateOutOfRangeDoesNotPanic(t *testing.T) {
	if set := Generate(250, Ring, 1, 0); set.Count != MaxSources {
		t.Errorf("count %d", set.Count)
	}
	if set := Generate(-3, Line, 1, 0); set.Count != 0 {
		t.Errorf("count %d", set.Count)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(37, Ring, 4.2, -3)
	b := Generate(37, Ring, 4.2, -3)
	if a != b {
		t.Fatal("Generate is not deterministic")
	}
}

func TestFloat32Flattening(t *testing.T) {
	set := Generate(2, Line, 2, 0)
	pos := set.Float32Positions(4)
	if len(pos) != 4*MaxSources {
		t.Fatalf("len %d", len(pos))
	}
	if pos[0] != -1 || pos[4] != 1 || pos[3] != 0 {
		t.Errorf("unexpected layout %v", pos[:8])
	}
	amp := set.Float32Amplitudes()
	if len(amp) != 2*MaxSources || amp[0] != 1 || amp[1] != 0 {
		t.Errorf("unexpected amplitudes %v", amp[:4])
	}
}

func TestParseArrangement(t *testing.T) {
	tests := []struct {
		in   string
		want Arrangement
		ok   bool
	}{
		{"line", Line, true},
		{" Ring ", Ring, true},
		{"grid", Line, false},
	}
	for _, tt := range tests {
		got, err := ParseArrangement(tt.in)
		if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
			t.Errorf("ParseArrangement(%q) = %v, %v", tt.in, got, err)
		}
	}
}
