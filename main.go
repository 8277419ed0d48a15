package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"instaferogram/internal/scene"
	"instaferogram/internal/wavefield"
)

// configFromFlags builds the initial configuration, clamping every value into
// the same ranges the keyboard controls use.
func configFromFlags() (wavefield.Config, error) {
	arrangement, err := wavefield.ParseArrangement(*arrangementFlag)
	if err != nil {
		return wavefield.Config{}, err
	}
	plot, err := wavefield.ParsePlotMode(*plotFlag)
	if err != nil {
		return wavefield.Config{}, err
	}
	cfg := wavefield.DefaultConfig()
	cfg.SourceCount = clampInt(*sourcesFlag, minSources, wavefield.MaxSources)
	cfg.Arrangement = arrangement
	cfg.Extent = clampFloat(*extentFlag, minExtent, maxExtent)
	cfg.ModeIndex = clampInt(*modeIndexFlag, minModeIndex, maxModeIndex)
	cfg.Wavenumber = wavefield.WavenumberFromWavelength(clampFloat(*wavelengthFlag, minWavelength, maxWavelength))
	cfg.Frequency = clampFloat(*frequencyFlag, minFrequency, maxFrequency)
	cfg.PlotMode = plot
	cfg.Exposure = clampFloat(*exposureFlag, minExposure, maxExposure)
	return cfg, nil
}

// sceneFromFlags builds the surfaces and camera.
func sceneFromFlags() (scene.Scene, scene.Camera, error) {
	sc := scene.Default()
	sc.SphereVisible = *showSphereFlag
	sc.SphereRadius = clampFloat(*sphereRadiusFlag, 0, maxRadius)

	cam := scene.DefaultCamera()
	pos, err := parseVec3(*cameraFlag)
	if err != nil {
		return sc, cam, fmt.Errorf("parsing -camera: %w", err)
	}
	if pos.Len() == 0 {
		return sc, cam, fmt.Errorf("camera cannot sit on its target")
	}
	cam.Position = pos
	cam.FOV = clampFloat(*fovDegreesFlag, minFOV, maxFOV)
	return sc, cam, nil
}

func main() {
	flag.Parse()

	cfg, err := configFromFlags()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	sc, cam, err := sceneFromFlags()
	if err != nil {
		log.Fatalf("invalid scene: %v", err)
	}
	probePoint, err := parseVec3(*probeFlag)
	if err != nil {
		log.Fatalf("parsing -probe: %v", err)
	}

	g := newGame(cfg, sc, cam)
	defer g.Close()
	g.probePoint = probePoint

	if *enableAudioFlag {
		if err := g.startAudioProbe(); err != nil {
			log.Printf("audio disabled: %v", err)
		}
	}

	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording(pgoProfilePath)
		if err != nil {
			log.Fatalf("failed to start default PGO recording: %v", err)
		}
		g.stopProfile = stop
		g.enableAutoSweep(pgoRecordDuration)
		log.Printf("Recording %s for %s with automatic parameter sweep", pgoProfilePath, pgoRecordDuration)
	}

	ebiten.SetWindowSize(w*windowScale, h*windowScale)
	ebiten.SetWindowTitle(windowTitle)
	// Frozen frames skip drawing, so the previous frame must survive.
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("run: %v", err)
	}
}
