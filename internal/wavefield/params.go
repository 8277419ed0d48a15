package wavefield

import (
	"fmt"
	"math"
	"strings"
)

// PlotMode selects how a complex amplitude is turned into a colour. The
// numeric values are shared with the GPU programs.
type PlotMode int

const (
	Intensity PlotMode = iota
	PhaseAndIntensity
	Phase
	RealPart

	plotModeCount = 4
)

var plotModeNames = [plotModeCount]string{"intensity", "phase-intensity", "phase", "real"}

func (m PlotMode) String() string {
	if m >= 0 && m < plotModeCount {
		return plotModeNames[m]
	}
	return fmt.Sprintf("plot(%d)", int(m))
}

// Next cycles through the plot modes.
func (m PlotMode) Next() PlotMode {
	return (m + 1) % plotModeCount
}

// ParsePlotMode accepts the names returned by PlotMode.String.
func ParsePlotMode(s string) (PlotMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range plotModeNames {
		if s == name {
			return PlotMode(i), nil
		}
	}
	return RealPart, fmt.Errorf("unknown plot mode %q (want one of %s)", s, strings.Join(plotModeNames[:], ", "))
}

// Params are the per-frame evaluation parameters.
type Params struct {
	Wavenumber   float64
	TimePhase    float64
	PlotMode     PlotMode
	Brightness   float64
	MaxAmplitude float64
	MaxIntensity float64
}

// Normalization returns the colour-scale constants for n sources.
func Normalization(n int) (maxAmplitude, maxIntensity float64) {
	fn := float64(n)
	return 0.5 * fn, 0.25 * fn * fn
}

// BrightnessFromExposure converts an exposure compensation in stops to a
// linear brightness factor.
func BrightnessFromExposure(exposure float64) float64 {
	return math.Pow(2, exposure)
}

// WavenumberFromWavelength returns k = 2π/λ.
func WavenumberFromWavelength(lambda float64) float64 {
	return 2 * math.Pi / lambda
}

// PhaseStep is the time-phase increment for frequency f over dt seconds.
func PhaseStep(frequency, dt float64) float64 {
	return 2 * math.Pi * frequency * dt
}
