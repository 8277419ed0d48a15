package main

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"instaferogram/internal/scene"
	"instaferogram/internal/wavefield"
)

// handleControls maps key presses to configuration changes. All range
// checking happens here; the wavefield package trusts its inputs.
func (g *Game) handleControls() {
	cfg := g.controller.Snapshot().Config
	coarse := ebiten.IsKeyPressed(ebiten.KeyShift)

	countStep := 1
	extStep := extentStep
	if coarse {
		countStep = 10
		extStep = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.controller.SetSourceCount(clampInt(cfg.SourceCount+countStep, minSources, wavefield.MaxSources))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.controller.SetSourceCount(clampInt(cfg.SourceCount-countStep, minSources, wavefield.MaxSources))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		next := wavefield.Ring
		if cfg.Arrangement == wavefield.Ring {
			next = wavefield.Line
		}
		g.controller.SetArrangement(next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.controller.SetModeIndex(clampInt(cfg.ModeIndex+1, minModeIndex, maxModeIndex))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.controller.SetModeIndex(clampInt(cfg.ModeIndex-1, minModeIndex, maxModeIndex))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.controller.SetExtent(clampFloat(cfg.Extent+extStep, minExtent, maxExtent))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.controller.SetExtent(clampFloat(cfg.Extent-extStep, minExtent, maxExtent))
	}

	lambda := 2 * math.Pi / cfg.Wavenumber
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.controller.SetWavenumber(wavefield.WavenumberFromWavelength(clampFloat(lambda+wavelengthStep, minWavelength, maxWavelength)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.controller.SetWavenumber(wavefield.WavenumberFromWavelength(clampFloat(lambda-wavelengthStep, minWavelength, maxWavelength)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.controller.SetFrequency(clampFloat(cfg.Frequency+frequencyStep, minFrequency, maxFrequency))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.controller.SetFrequency(clampFloat(cfg.Frequency-frequencyStep, minFrequency, maxFrequency))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.controller.SetPlotMode(cfg.PlotMode.Next())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.controller.SetBrightness(clampFloat(cfg.Exposure+exposureStep, minExposure, maxExposure))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.controller.SetBrightness(clampFloat(cfg.Exposure-exposureStep, minExposure, maxExposure))
	}

	g.handleSceneControls(coarse)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.frozen = !g.frozen
	}
}

// handleSceneControls toggles and moves the surfaces and points the camera.
// Alt+X/Y/Z moves a plane instead of toggling it; Shift reverses moves.
// Period and comma widen and narrow the field of view.
func (g *Game) handleSceneControls(reverse bool) {
	step, rstep := planeStep, radiusStep
	if reverse {
		step, rstep = -planeStep, -radiusStep
	}
	for axis, key := range [...]ebiten.Key{ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ} {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		a := scene.Axis(axis)
		if ebiten.IsKeyPressed(ebiten.KeyAlt) {
			g.scene.SetPlaneOffset(a, g.scene.Planes[a].Offset+step)
		} else {
			g.scene.TogglePlane(a)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.scene.SphereVisible = !g.scene.SphereVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.SphereRadius = clampFloat(g.scene.SphereRadius+rstep, 0, maxRadius)
	}
	fstep := fovStep
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		fstep *= 5
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.camera.FOV = stepFOV(g.camera.FOV, fstep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.camera.FOV = stepFOV(g.camera.FOV, -fstep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.camera.PointAlongZ(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.camera.PointAlongZ(false)
	}
}

// enableAutoSweep schedules random configuration changes for a limited duration.
func (g *Game) enableAutoSweep(duration time.Duration) {
	g.autoSweep = true
	g.autoSweepDeadline = time.Now().Add(duration)
	if g.sweepRand == nil {
		g.sweepRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.sweepFrameCount = 0
}

// autoSweepStep randomizes the sources and plot mode every few dozen frames.
func (g *Game) autoSweepStep() {
	if time.Now().After(g.autoSweepDeadline) {
		g.autoSweep = false
		if g.stopProfile != nil {
			g.stopProfile()
			g.stopProfile = nil
			log.Printf("Auto sweep finished")
		}
		return
	}
	if g.sweepFrameCount > 0 {
		g.sweepFrameCount--
		return
	}
	r := g.sweepRand
	g.sweepFrameCount = sweepMinFrames + r.Intn(sweepMaxFrames-sweepMinFrames+1)
	g.controller.SetSourceCount(minSources + r.Intn(wavefield.MaxSources))
	g.controller.SetArrangement(wavefield.Arrangement(r.Intn(2)))
	g.controller.SetModeIndex(minModeIndex + r.Intn(maxModeIndex-minModeIndex+1))
	g.controller.SetExtent(r.Float64() * 4)
	g.controller.SetPlotMode(wavefield.PlotMode(r.Intn(4)))
}

// stepFOV changes the field of view in degrees within [minFOV, maxFOV].
func stepFOV(fov, delta float64) float64 {
	return clampFloat(fov+delta, minFOV, maxFOV)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
