package main

import "time"

// Window, timing and control-range constants for the interference viewer.
const (
	w, h        = 480, 360
	windowScale = 2
	windowTitle = "Instaferogram"

	minSources     = 1
	minModeIndex   = -10
	maxModeIndex   = 10
	minExtent      = 0.0
	maxExtent      = 20.0
	extentStep     = 0.1
	minWavelength  = 0.01
	maxWavelength  = 2.0
	wavelengthStep = 0.01
	minFrequency   = -20.0
	maxFrequency   = 20.0
	frequencyStep  = 0.1
	minExposure    = -1.0
	maxExposure    = 10.0
	exposureStep   = 1.0 / 3
	planeStep      = 0.25
	radiusStep     = 0.1
	maxRadius      = 5.0
	minFOV         = 10.0
	maxFOV         = 170.0
	fovStep        = 2.0

	// maxFrameDelta caps the time-phase advance after a stall (window drag, breakpoint).
	maxFrameDelta = 250 * time.Millisecond

	sweepMinFrames    = 30
	sweepMaxFrames    = 90
	pgoRecordDuration = 15 * time.Second
	pgoProfilePath    = "default.pgo"

	audioSampleRate     = 48000
	audioBufferDuration = 80 * time.Millisecond
)
