package main

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Command-line flags. The physics flags seed the initial configuration; every
// one of them can also be changed at runtime from the keyboard.
var (
	sourcesFlag     = flag.Int("sources", 100, "number of point sources (1-100)")
	arrangementFlag = flag.String("arrangement", "line", "source arrangement: line or ring")
	extentFlag      = flag.Float64("extent", 1, "length of the line / diameter of the ring of sources")
	modeIndexFlag   = flag.Int("m", 1, "azimuthal mode index controlling the phase winding across sources")
	wavelengthFlag  = flag.Float64("wavelength", 1, "wavelength; the wavenumber is 2π/wavelength")
	frequencyFlag   = flag.Float64("frequency", 0.5, "oscillation frequency in Hz driving the time phase")
	plotFlag        = flag.String("plot", "real", "plot mode: intensity, phase-intensity, phase or real")
	exposureFlag    = flag.Float64("exposure", 0, "exposure compensation in stops; brightness = 2^exposure")

	showSphereFlag   = flag.Bool("show-sphere", false, "show the sphere surface")
	sphereRadiusFlag = flag.Float64("sphere-radius", 1, "sphere radius")
	fovDegreesFlag   = flag.Float64("fov-deg", 68, "larger of the horizontal and vertical field of view (degrees, 10-170)")
	cameraFlag       = flag.String("camera", "11,8,15", "camera position as x,y,z; the camera looks at the origin")

	// backendFlag picks where the per-pixel field evaluation runs.
	backendFlag = flag.String("backend", "shader", "field evaluation backend: shader (GPU), cpu or opencl")
	workersFlag = flag.Int("workers", runtime.NumCPU(), "worker goroutines for the cpu backend")

	verifyOpenCLFlag = flag.Bool("verify-opencl", false, "compare sampled OpenCL pixels against the CPU evaluation")
	verifyShaderFlag = flag.Bool("verify-shader", false, "compare sampled shader pixels against the CPU evaluation")

	// debugFlag enables the FPS overlay and source markers.
	debugFlag = flag.Bool("debug", false, "show FPS, parameters and source markers")

	// enableAudioFlag plays a tone modulated by the field at the probe point.
	enableAudioFlag = flag.Bool("enable-audio", false, "sonify the field at the probe point")
	probeFlag       = flag.String("probe", "0,2,0", "audio probe position as x,y,z")

	// recordDefaultPGO sweeps parameters automatically while capturing default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "sweep parameters for 15s while capturing default.pgo")
)

// parseVec3 reads "x,y,z".
func parseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = f
	}
	return v, nil
}
