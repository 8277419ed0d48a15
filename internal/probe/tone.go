// Package probe turns the field at a single listening point into sound.
package probe

import (
	"math"
	"math/cmplx"
	"sync"
)

const (
	// ToneHz is the carrier pitch; the field's gain and phase modulate it.
	ToneHz = 220.0
	// frameBytes is one 16-bit stereo frame.
	frameBytes = 4
	pcm16Max   = 32767
	// gainSmoothing and phaseSmoothing limit clicks when the probe amplitude
	// jumps between frames.
	gainSmoothing  = 0.002
	phaseSmoothing = 0.002
)

// Tone is an io.Reader producing 16-bit little-endian stereo PCM. Its gain and
// phase follow the last amplitude passed to Set.
type Tone struct {
	mu         sync.Mutex
	sampleRate float64
	t          float64
	gain        float64
	targetGain  float64
	phase       float64
	targetPhase float64
}

// NewTone creates a silent tone for the given sample rate.
func NewTone(sampleRate int) *Tone {
	return &Tone{sampleRate: float64(sampleRate)}
}

// Set updates the probe amplitude; maxAmplitude normalizes the gain, which is
// capped at 1. Non-finite amplitudes mute the tone.
func (s *Tone) Set(a complex128, maxAmplitude float64) {
	gain := 0.0
	phase := 0.0
	if !cmplx.IsNaN(a) && !cmplx.IsInf(a) && maxAmplitude > 0 {
		gain = math.Min(1, cmplx.Abs(a)/maxAmplitude)
		phase = cmplx.Phase(a)
	}
	s.mu.Lock()
	s.targetGain = gain
	s.targetPhase = phase
	s.mu.Unlock()
}

// Phase reports the smoothed phase offset currently applied.
func (s *Tone) Phase() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Gain reports the smoothed gain currently applied.
func (s *Tone) Gain() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gain
}

func (s *Tone) Read(p []byte) (int, error) {
	n := len(p) - len(p)%frameBytes
	if n == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	step := 2 * math.Pi * ToneHz / s.sampleRate
	for i := 0; i < n; i += frameBytes {
		s.gain += (s.targetGain - s.gain) * gainSmoothing
		// Slew along the shorter arc so a wrap from +π to -π stays small.
		s.phase += math.Remainder(s.targetPhase-s.phase, 2*math.Pi) * phaseSmoothing
		s.phase = math.Remainder(s.phase, 2*math.Pi)
		v := int16(s.gain * math.Sin(s.t+s.phase) * pcm16Max)
		s.t += step
		if s.t > 2*math.Pi {
			s.t -= 2 * math.Pi
		}
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return n, nil
}

func (s *Tone) Close() error {
	return nil
}
