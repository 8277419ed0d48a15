package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"instaferogram/internal/raster"
	"instaferogram/internal/scene"
	"instaferogram/internal/wavefield"
)

// frameInput is everything a backend needs for one frame. The snapshot is
// read once when the frame starts and used for every pixel.
type frameInput struct {
	snap  *wavefield.Snapshot
	scene scene.Scene
	view  scene.View
}

// fieldBackend evaluates and colour-maps the field for every pixel on screen.
type fieldBackend interface {
	Name() string
	Draw(screen *ebiten.Image, frame *frameInput) error
	Close()
}

// newBackend selects a backend by flag value.
func newBackend(name string) (fieldBackend, error) {
	switch name {
	case "shader":
		return newShaderBackend()
	case "cpu":
		return newCPUBackend(w, h, *workersFlag), nil
	case "opencl":
		return newOpenCLBackend(w, h, *workersFlag)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// cpuBackend runs the raster worker pool and uploads the framebuffer.
type cpuBackend struct {
	renderer *raster.Renderer
}

func newCPUBackend(width, height, workers int) *cpuBackend {
	return &cpuBackend{renderer: raster.New(width, height, workers)}
}

func (b *cpuBackend) Name() string { return "cpu" }

func (b *cpuBackend) Draw(screen *ebiten.Image, frame *frameInput) error {
	pix := b.renderer.Render(frame.snap, &frame.scene, &frame.view)
	screen.WritePixels(pix)
	return nil
}

func (b *cpuBackend) Close() { b.renderer.Close() }

// verifySamples is how many pixels -verify-opencl and -verify-shader compare
// per frame.
const verifySamples = 64

// compareSampled checks a diagonal of pixels in an RGBA buffer against the
// CPU shading of the same frame. Channels may differ by up to tolerance.
func compareSampled(pix []byte, width, height int, frame *frameInput, tolerance int) error {
	if len(pix) < width*height*4 {
		return fmt.Errorf("pixel buffer holds %d bytes, want %d", len(pix), width*height*4)
	}
	for i := 0; i < verifySamples; i++ {
		x := (i*width)/verifySamples + width/(2*verifySamples)
		y := (i*height)/verifySamples + height/(2*verifySamples)
		want := raster.ShadePixel(frame.snap, &frame.scene, &frame.view, x, y)
		idx := (y*width + x) * 4
		got := pix[idx : idx+4]
		for c, wv := range [3]uint8{want.R, want.G, want.B} {
			if diff := int(got[c]) - int(wv); diff > tolerance || diff < -tolerance {
				return fmt.Errorf("pixel (%d,%d) channel %d: device=%d host=%d", x, y, c, got[c], wv)
			}
		}
	}
	return nil
}

// wrapPhase reduces the accumulated time phase to [0, 2π) before it is
// narrowed to float32, which would otherwise lose precision after a few minutes.
func wrapPhase(phase float64) float64 {
	phase = math.Mod(phase, 2*math.Pi)
	if phase < 0 {
		phase += 2 * math.Pi
	}
	return phase
}
