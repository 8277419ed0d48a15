package main

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"instaferogram/internal/scene"
)

//go:embed interference.kage
var interferenceKage []byte

// shaderBackend evaluates the field in a Kage fragment program, one
// invocation per pixel.
type shaderBackend struct {
	shader   *ebiten.Shader
	uniforms map[string]any

	// positions and amplitudes are re-flattened only when the sources change.
	generation uint64
	positions  []float32
	amplitudes []float32

	debugVerify bool
	readback    []byte
}

// shaderVerifyTolerance allows for float32 evaluation and GPU rounding.
const shaderVerifyTolerance = 4

func newShaderBackend() (*shaderBackend, error) {
	s, err := ebiten.NewShader(interferenceKage)
	if err != nil {
		return nil, fmt.Errorf("compiling interference shader: %w", err)
	}
	return &shaderBackend{
		shader:      s,
		uniforms:    map[string]any{},
		debugVerify: *verifyShaderFlag,
	}, nil
}

func (b *shaderBackend) Name() string { return "shader" }

func (b *shaderBackend) Draw(screen *ebiten.Image, frame *frameInput) error {
	u := b.setUniforms(frame)
	bounds := screen.Bounds()
	screen.DrawRectShader(bounds.Dx(), bounds.Dy(), b.shader, &ebiten.DrawRectShaderOptions{Uniforms: u})
	if b.debugVerify {
		size := 4 * bounds.Dx() * bounds.Dy()
		if len(b.readback) != size {
			b.readback = make([]byte, size)
		}
		screen.ReadPixels(b.readback)
		if err := compareSampled(b.readback, bounds.Dx(), bounds.Dy(), frame, shaderVerifyTolerance); err != nil {
			return fmt.Errorf("shader output differs from cpu: %w", err)
		}
	}
	return nil
}

// setUniforms fills the uniform map for one frame. Every uniform declared in
// interference.kage is set.
func (b *shaderBackend) setUniforms(frame *frameInput) map[string]any {
	snap := frame.snap
	if b.positions == nil || snap.SourceGeneration != b.generation {
		b.positions = snap.Sources.Float32Positions(3)
		b.amplitudes = snap.Sources.Float32Amplitudes()
		b.generation = snap.SourceGeneration
	}
	p := snap.Params
	v := frame.view
	sc := frame.scene

	u := b.uniforms
	u["SourcePositions"] = b.positions
	u["SourceAmplitudes"] = b.amplitudes
	u["SourceCount"] = float32(snap.Sources.Count)
	u["Wavenumber"] = float32(p.Wavenumber)
	u["TimePhase"] = float32(wrapPhase(p.TimePhase))
	u["PlotMode"] = float32(p.PlotMode)
	u["Brightness"] = float32(p.Brightness)
	u["MaxAmplitude"] = float32(p.MaxAmplitude)
	u["MaxIntensity"] = float32(p.MaxIntensity)

	u["ScreenSize"] = []float32{float32(v.Width), float32(v.Height)}
	u["CameraOrigin"] = vec3f(v.Origin[0], v.Origin[1], v.Origin[2])
	u["CameraForward"] = vec3f(v.Forward[0], v.Forward[1], v.Forward[2])
	u["CameraRight"] = vec3f(v.Right[0], v.Right[1], v.Right[2])
	u["CameraUp"] = vec3f(v.Up[0], v.Up[1], v.Up[2])
	u["Far"] = float32(v.Far)

	u["PlaneOffsets"] = vec3f(sc.Planes[scene.AxisX].Offset, sc.Planes[scene.AxisY].Offset, sc.Planes[scene.AxisZ].Offset)
	u["PlaneVisible"] = vec3f(flag01(sc.Planes[scene.AxisX].Visible), flag01(sc.Planes[scene.AxisY].Visible), flag01(sc.Planes[scene.AxisZ].Visible))
	u["PlaneHalfSize"] = float32(scene.HalfSize)
	u["SphereRadius"] = float32(sc.SphereRadius)
	u["SphereVisible"] = float32(flag01(sc.SphereVisible))
	u["Sky"] = []float32{float32(scene.Sky.R) / 255, float32(scene.Sky.G) / 255, float32(scene.Sky.B) / 255}
	return u
}

func (b *shaderBackend) Close() { b.shader.Deallocate() }

func vec3f(x, y, z float64) []float32 {
	return []float32{float32(x), float32(y), float32(z)}
}

func flag01(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
