package wavefield

import (
	"image/color"
	"math"
	"math/cmplx"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colour maps a complex amplitude to an unclamped linear RGB colour under the
// params' plot mode. Channels may fall outside [0,1] (or be non-finite); the
// display stage clamps them, as a GPU framebuffer would.
func Colour(a complex128, p *Params) colorful.Color {
	switch p.PlotMode {
	case RealPart:
		v := p.Brightness * real(a) / p.MaxAmplitude
		return colorful.Color{R: v, G: 0, B: -v}
	case Phase:
		return hsv(hue(a), 1, 1)
	case PhaseAndIntensity:
		return hsv(hue(a), 1, p.Brightness*intensity(a)/p.MaxIntensity)
	default:
		v := p.Brightness * intensity(a) / p.MaxIntensity
		return colorful.Color{R: v, G: v, B: v}
	}
}

// hue maps the phase in (-π, π] to (0, 1].
func hue(a complex128) float64 {
	return 0.5 + cmplx.Phase(a)/(2*math.Pi)
}

func intensity(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}

// hsv wraps the hue into [0,1) first; colorful.Hsv leaves H = 360 black.
func hsv(h, s, v float64) colorful.Color {
	h -= math.Floor(h)
	return colorful.Hsv(h*360, s, v)
}

// RGBA clamps c into displayable 8-bit RGBA. NaN channels become 0.
func RGBA(c colorful.Color) color.RGBA {
	c = colorful.Color{R: finite(c.R), G: finite(c.G), B: finite(c.B)}.Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
