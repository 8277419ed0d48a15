package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"instaferogram/internal/probe"
	"instaferogram/internal/scene"
	"instaferogram/internal/wavefield"
)

// Game drives the viewer: it owns the configuration controller, the scene and
// camera, and the backend that evaluates the field each frame.
type Game struct {
	controller *wavefield.Controller

	scene  scene.Scene
	camera scene.Camera

	backend fieldBackend
	// fallback builds the backend used after the current one fails.
	fallback func() fieldBackend

	// frozen stops frame evaluation and time advance; the last frame stays up.
	frozen   bool
	lastTick time.Time

	lastDrawDuration time.Duration

	autoSweep         bool
	autoSweepDeadline time.Time
	sweepRand         *rand.Rand
	sweepFrameCount   int
	stopProfile       func()

	probePoint  mgl64.Vec3
	tone        *probe.Tone
	audioCtx    *audio.Context
	audioPlayer *audio.Player
}

// newGame constructs a fully initialized Game instance.
func newGame(cfg wavefield.Config, sc scene.Scene, cam scene.Camera) *Game {
	g := &Game{
		controller: wavefield.NewController(cfg),
		scene:      sc,
		camera:     cam,
	}
	g.fallback = func() fieldBackend { return newCPUBackend(w, h, *workersFlag) }
	backend, err := newBackend(*backendFlag)
	if err != nil {
		log.Printf("%s backend unavailable, falling back to cpu: %v", *backendFlag, err)
		backend = g.fallback()
	}
	g.backend = backend
	log.Printf("Field evaluation backend: %s", g.backend.Name())
	return g
}

// Update advances the time phase, applies input and feeds the audio probe.
func (g *Game) Update() error {
	now := time.Now()
	if g.lastTick.IsZero() {
		g.lastTick = now
	}
	dt := now.Sub(g.lastTick)
	g.lastTick = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	g.handleControls()
	if g.autoSweep {
		g.autoSweepStep()
	}
	if g.frozen {
		return nil
	}

	snap := g.controller.Advance(dt.Seconds())
	if g.tone != nil {
		g.tone.Set(snap.Evaluate(g.probePoint), snap.Params.MaxAmplitude)
	}
	return nil
}

// Close releases the backend and stops any running profile.
func (g *Game) Close() {
	if g.stopProfile != nil {
		g.stopProfile()
		g.stopProfile = nil
	}
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
	if g.backend != nil {
		g.backend.Close()
	}
}
