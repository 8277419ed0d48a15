package main

import (
	"regexp"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"instaferogram/internal/raster"
	"instaferogram/internal/scene"
	"instaferogram/internal/wavefield"
)

func testFrame(width, height int) *frameInput {
	cfg := wavefield.DefaultConfig()
	cfg.SourceCount = 12
	cfg.Arrangement = wavefield.Ring
	cfg.Extent = 2
	cfg.PlotMode = wavefield.PhaseAndIntensity
	c := wavefield.NewController(cfg)
	c.Advance(0.7)
	sc := scene.Default()
	sc.SphereVisible = true
	return &frameInput{
		snap:  c.Snapshot(),
		scene: sc,
		view:  scene.DefaultCamera().View(width, height),
	}
}

func TestInterferenceShaderCompiles(t *testing.T) {
	if _, err := ebiten.NewShader(interferenceKage); err != nil {
		t.Fatalf("interference.kage: %v", err)
	}
}

func TestShaderUniformsMatchDeclarations(t *testing.T) {
	declared := map[string]bool{}
	for _, m := range regexp.MustCompile(`(?m)^var (\w+) `).FindAllSubmatch(interferenceKage, -1) {
		declared[string(m[1])] = true
	}
	if len(declared) == 0 {
		t.Fatal("no uniforms found in interference.kage")
	}

	b := &shaderBackend{uniforms: map[string]any{}}
	u := b.setUniforms(testFrame(48, 32))
	for name := range declared {
		if _, ok := u[name]; !ok {
			t.Errorf("uniform %s declared but never set", name)
		}
	}
	for name := range u {
		if !declared[name] {
			t.Errorf("uniform %s set but not declared", name)
		}
	}
	if got := len(u["SourcePositions"].([]float32)); got != 3*wavefield.MaxSources {
		t.Errorf("SourcePositions has %d floats", got)
	}
	if got := len(u["SourceAmplitudes"].([]float32)); got != 2*wavefield.MaxSources {
		t.Errorf("SourceAmplitudes has %d floats", got)
	}
	if tp := u["TimePhase"].(float32); tp < 0 || tp >= 6.2832 {
		t.Errorf("time phase %v not wrapped", tp)
	}
}

func TestShaderUniformsReuseSourcesUntilRebuilt(t *testing.T) {
	cfg := wavefield.DefaultConfig()
	c := wavefield.NewController(cfg)
	frame := &frameInput{snap: c.Snapshot(), scene: scene.Default(), view: scene.DefaultCamera().View(48, 32)}
	b := &shaderBackend{uniforms: map[string]any{}}
	first := b.setUniforms(frame)["SourcePositions"].([]float32)

	frame.snap = c.Advance(0.1)
	if again := b.setUniforms(frame)["SourcePositions"].([]float32); &again[0] != &first[0] {
		t.Fatal("positions re-flattened without a source change")
	}
	frame.snap = c.SetSourceCount(3)
	if rebuilt := b.setUniforms(frame)["SourcePositions"].([]float32); &rebuilt[0] == &first[0] {
		t.Fatal("positions not refreshed after the sources changed")
	}
}

func TestCompareSampled(t *testing.T) {
	const width, height = 96, 64
	frame := testFrame(width, height)
	r := raster.New(width, height, 2)
	defer r.Close()
	pix := append([]byte(nil), r.Render(frame.snap, &frame.scene, &frame.view)...)

	if err := compareSampled(pix, width, height, frame, 0); err != nil {
		t.Fatalf("cpu output should match itself: %v", err)
	}

	// First sampled pixel.
	x, y := width/(2*verifySamples), height/(2*verifySamples)
	idx := (y*width + x) * 4
	pix[idx+1] ^= 0x80
	if err := compareSampled(pix, width, height, frame, shaderVerifyTolerance); err == nil {
		t.Fatal("corrupted pixel not detected")
	}

	if err := compareSampled(pix[:10], width, height, frame, 0); err == nil {
		t.Fatal("short buffer accepted")
	}
}
