// Package raster evaluates the wavefield over a framebuffer on the CPU using
// a fixed set of worker goroutines.
package raster

import (
	"image/color"
	"sync"

	"instaferogram/internal/scene"
	"instaferogram/internal/wavefield"
)

// rowJob processes a single framebuffer row.
type rowJob func(y int)

// workerRows lists the rows assigned to one worker.
type workerRows struct {
	rows []int
}

// Renderer owns the framebuffer and the worker goroutines that fill it.
// Render and Points must be called from one goroutine at a time.
type Renderer struct {
	width, height int
	pixels        []byte
	points        []float32

	workerCount int
	assignments []workerRows

	mu      sync.Mutex
	cond    *sync.Cond
	step    int
	pending int
	closed  bool
	job     rowJob
}

// New starts workers goroutines (at least one) for a width×height framebuffer.
func New(width, height, workers int) *Renderer {
	if workers < 1 {
		workers = 1
	}
	r := &Renderer{
		width:       width,
		height:      height,
		pixels:      make([]byte, width*height*4),
		workerCount: workers,
		assignments: assignRows(workers, height),
	}
	r.cond = sync.NewCond(&r.mu)
	for i := 0; i < workers; i++ {
		go r.workerLoop(i)
	}
	return r
}

// assignRows distributes rows across workers in round robin fashion so
// expensive bands (e.g. near sources) are shared out.
func assignRows(workerCount, height int) []workerRows {
	out := make([]workerRows, workerCount)
	for y := 0; y < height; y++ {
		idx := y % workerCount
		out[idx].rows = append(out[idx].rows, y)
	}
	return out
}

func (r *Renderer) workerLoop(index int) {
	lastStep := 0
	r.mu.Lock()
	for {
		for r.step == lastStep && !r.closed {
			r.cond.Wait()
		}
		if r.closed {
			r.mu.Unlock()
			return
		}
		lastStep = r.step
		job := r.job
		rows := r.assignments[index].rows
		r.mu.Unlock()

		for _, y := range rows {
			job(y)
		}

		r.mu.Lock()
		r.pending--
		if r.pending == 0 {
			r.cond.Broadcast()
		}
	}
}

// run hands job to every worker and waits for all rows to finish.
func (r *Renderer) run(job rowJob) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.job = job
	r.pending = r.workerCount
	r.step++
	r.cond.Broadcast()
	for r.pending > 0 {
		r.cond.Wait()
	}
	r.job = nil
	return true
}

// Render shades every pixel with the snapshot and returns the RGBA
// framebuffer. The slice is reused by the next call.
func (r *Renderer) Render(snap *wavefield.Snapshot, sc *scene.Scene, view *scene.View) []byte {
	r.run(func(y int) {
		base := y * r.width * 4
		for x := 0; x < r.width; x++ {
			c := ShadePixel(snap, sc, view, x, y)
			i := base + x*4
			r.pixels[i] = c.R
			r.pixels[i+1] = c.G
			r.pixels[i+2] = c.B
			r.pixels[i+3] = c.A
		}
	})
	return r.pixels
}

// Points writes the visible surface point of every pixel as an (x, y, z, hit)
// float4, hit being 1 or 0. The slice is reused by the next call.
func (r *Renderer) Points(sc *scene.Scene, view *scene.View) []float32 {
	if len(r.points) != r.width*r.height*4 {
		r.points = make([]float32, r.width*r.height*4)
	}
	r.run(func(y int) {
		base := y * r.width * 4
		for x := 0; x < r.width; x++ {
			i := base + x*4
			p, ok := view.Surface(sc, x, y)
			if !ok {
				r.points[i], r.points[i+1], r.points[i+2], r.points[i+3] = 0, 0, 0, 0
				continue
			}
			r.points[i] = float32(p.X())
			r.points[i+1] = float32(p.Y())
			r.points[i+2] = float32(p.Z())
			r.points[i+3] = 1
		}
	})
	return r.points
}

// ShadePixel is the per-pixel contract shared by all backends: the sky where
// nothing is hit, otherwise the colour-mapped field at the hit point.
func ShadePixel(snap *wavefield.Snapshot, sc *scene.Scene, view *scene.View, x, y int) color.RGBA {
	p, ok := view.Surface(sc, x, y)
	if !ok {
		return scene.Sky
	}
	return wavefield.RGBA(wavefield.Colour(snap.Evaluate(p), &snap.Params))
}

// Close stops the workers. Render is a no-op afterwards.
func (r *Renderer) Close() {
	r.mu.Lock()
	r.closed = true
	r.cond.Broadcast()
	r.mu.Unlock()
}

// Size reports the framebuffer dimensions.
func (r *Renderer) Size() (int, int) { return r.width, r.height }
