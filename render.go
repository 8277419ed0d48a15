package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// markerRad is the half-size of the source markers drawn in debug mode.
const markerRad = 1

// Draw evaluates the field for one frame with a single snapshot. While frozen
// nothing is drawn and the previous frame stays on screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frozen {
		return
	}
	frame := &frameInput{
		snap:  g.controller.Snapshot(),
		scene: g.scene,
		view:  g.camera.View(w, h),
	}
	start := time.Now()
	if err := g.drawFrame(screen, frame); err != nil {
		log.Printf("frame not drawn: %v", err)
	}
	g.lastDrawDuration = time.Since(start)

	if *debugFlag {
		g.drawSourceMarkers(screen, frame)
		g.drawDebugOverlay(screen, frame)
	}
}

// drawFrame draws with the current backend. When it fails the backend is
// replaced by the fallback, which draws the same frame.
func (g *Game) drawFrame(screen *ebiten.Image, frame *frameInput) error {
	err := g.backend.Draw(screen, frame)
	if err == nil {
		return nil
	}
	log.Printf("%s backend failed, switching to fallback: %v", g.backend.Name(), err)
	g.backend.Close()
	g.backend = g.fallback()
	if err := g.backend.Draw(screen, frame); err != nil {
		return fmt.Errorf("%s backend: %w", g.backend.Name(), err)
	}
	return nil
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return w, h }

// drawSourceMarkers plots every active source projected onto the screen.
func (g *Game) drawSourceMarkers(screen *ebiten.Image, frame *frameInput) {
	positions, _ := frame.snap.Sources.Active()
	for _, p := range positions {
		x, y, ok := frame.view.Project(p)
		if !ok {
			continue
		}
		cx, cy := int(math.Floor(x)), int(math.Floor(y))
		for dy := -markerRad; dy <= markerRad; dy++ {
			for dx := -markerRad; dx <= markerRad; dx++ {
				px, py := cx+dx, cy+dy
				if px >= 0 && px < w && py >= 0 && py < h {
					screen.Set(px, py, color.RGBA{255, 255, 0, 255})
				}
			}
		}
	}
}

// drawDebugOverlay prints frame timing and the current configuration.
func (g *Game) drawDebugOverlay(screen *ebiten.Image, frame *frameInput) {
	cfg := frame.snap.Config
	p := frame.snap.Params
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f  draw %.2f ms (%s)\n"+
		"sources %d %s  m=%d  d=%.2f\n"+
		"lambda %.2f  f %.1f Hz  phase %.2f\n"+
		"plot %s  exposure %+.2f (x%.2f)  fov %.0f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.lastDrawDuration.Seconds()*1000, g.backend.Name(),
		cfg.SourceCount, cfg.Arrangement, cfg.ModeIndex, cfg.Extent,
		2*math.Pi/p.Wavenumber, cfg.Frequency, math.Mod(p.TimePhase, 2*math.Pi),
		p.PlotMode, cfg.Exposure, p.Brightness, g.camera.FOV)
	ebitenutil.DebugPrint(screen, msg)
}
