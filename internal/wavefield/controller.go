package wavefield

import (
	"sync"
	"sync/atomic"
)

// Config is the editable source and render configuration.
type Config struct {
	SourceCount int
	Arrangement Arrangement
	Extent      float64
	ModeIndex   int

	Wavenumber float64
	Frequency  float64
	PlotMode   PlotMode
	Exposure   float64
}

// DefaultConfig mirrors the initial state of the interactive viewer:
// 100 sources on a unit line, m = 1, λ = 1, real-part plot.
func DefaultConfig() Config {
	return Config{
		SourceCount: 100,
		Arrangement: Line,
		Extent:      1,
		ModeIndex:   1,
		Wavenumber:  WavenumberFromWavelength(1),
		Frequency:   0.5,
		PlotMode:    RealPart,
		Exposure:    0,
	}
}

// Snapshot is an immutable view of everything one frame needs. Never modify
// a Snapshot obtained from a Controller.
type Snapshot struct {
	Sources SourceSet
	Params  Params
	Config  Config

	Generation uint64
	// SourceGeneration changes only when Sources is regenerated.
	SourceGeneration uint64
}

// Controller owns the mutable configuration. Every change publishes a new
// Snapshot; readers load it atomically and keep it for a whole frame.
type Controller struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewController builds the initial sources for cfg and publishes them.
func NewController(cfg Config) *Controller {
	c := &Controller{}
	maxA, maxI := Normalization(cfg.SourceCount)
	c.current.Store(&Snapshot{
		Sources: Generate(cfg.SourceCount, cfg.Arrangement, cfg.Extent, cfg.ModeIndex),
		Params: Params{
			Wavenumber:   cfg.Wavenumber,
			PlotMode:     cfg.PlotMode,
			Brightness:   BrightnessFromExposure(cfg.Exposure),
			MaxAmplitude: maxA,
			MaxIntensity: maxI,
		},
		Config: cfg,
	})
	return c
}

// Snapshot returns the latest complete snapshot.
func (c *Controller) Snapshot() *Snapshot {
	return c.current.Load()
}

// update copies the current snapshot, applies fn and publishes the copy.
func (c *Controller) update(fn func(next *Snapshot)) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := *c.current.Load()
	fn(&next)
	next.Generation++
	c.current.Store(&next)
	return &next
}

// rebuild regenerates the whole source set after a source-level change.
func (c *Controller) rebuild(edit func(cfg *Config)) *Snapshot {
	return c.update(func(next *Snapshot) {
		edit(&next.Config)
		cfg := next.Config
		next.Sources = Generate(cfg.SourceCount, cfg.Arrangement, cfg.Extent, cfg.ModeIndex)
		next.SourceGeneration++
		next.Params.MaxAmplitude, next.Params.MaxIntensity = Normalization(cfg.SourceCount)
	})
}

func (c *Controller) SetSourceCount(n int) *Snapshot {
	return c.rebuild(func(cfg *Config) { cfg.SourceCount = n })
}

func (c *Controller) SetArrangement(a Arrangement) *Snapshot {
	return c.rebuild(func(cfg *Config) { cfg.Arrangement = a })
}

func (c *Controller) SetExtent(extent float64) *Snapshot {
	return c.rebuild(func(cfg *Config) { cfg.Extent = extent })
}

func (c *Controller) SetModeIndex(m int) *Snapshot {
	return c.rebuild(func(cfg *Config) { cfg.ModeIndex = m })
}

func (c *Controller) SetWavenumber(k float64) *Snapshot {
	return c.update(func(next *Snapshot) {
		next.Config.Wavenumber = k
		next.Params.Wavenumber = k
	})
}

// SetFrequency changes how fast Advance moves the time phase.
func (c *Controller) SetFrequency(f float64) *Snapshot {
	return c.update(func(next *Snapshot) { next.Config.Frequency = f })
}

func (c *Controller) SetPlotMode(m PlotMode) *Snapshot {
	return c.update(func(next *Snapshot) {
		next.Config.PlotMode = m
		next.Params.PlotMode = m
	})
}

// SetBrightness takes an exposure in stops; the factor applied is 2^exposure.
func (c *Controller) SetBrightness(exposure float64) *Snapshot {
	return c.update(func(next *Snapshot) {
		next.Config.Exposure = exposure
		next.Params.Brightness = BrightnessFromExposure(exposure)
	})
}

// Advance moves the time phase on by 2π·f·dt. It is driven by the frame clock.
func (c *Controller) Advance(dt float64) *Snapshot {
	return c.update(func(next *Snapshot) {
		next.Params.TimePhase += PhaseStep(next.Config.Frequency, dt)
	})
}
