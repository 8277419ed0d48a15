package main

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type stubBackend struct {
	name   string
	err    error
	draws  int
	closed bool
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Draw(*ebiten.Image, *frameInput) error {
	b.draws++
	return b.err
}

func (b *stubBackend) Close() { b.closed = true }

func TestDrawFrameFallsBack(t *testing.T) {
	primary := &stubBackend{name: "shader", err: errors.New("lost device")}
	spare := &stubBackend{name: "cpu"}
	g := &Game{backend: primary, fallback: func() fieldBackend { return spare }}

	if err := g.drawFrame(nil, &frameInput{}); err != nil {
		t.Fatal(err)
	}
	if !primary.closed {
		t.Fatal("failed backend not closed")
	}
	if g.backend != spare || spare.draws != 1 {
		t.Fatalf("fallback not used for the same frame: backend=%s draws=%d", g.backend.Name(), spare.draws)
	}

	if err := g.drawFrame(nil, &frameInput{}); err != nil || spare.draws != 2 {
		t.Fatalf("healthy backend: err=%v draws=%d", err, spare.draws)
	}
}

func TestDrawFrameReportsFallbackFailure(t *testing.T) {
	broken := &stubBackend{name: "cpu", err: errors.New("closed")}
	g := &Game{
		backend:  &stubBackend{name: "opencl", err: errors.New("kernel")},
		fallback: func() fieldBackend { return broken },
	}
	err := g.drawFrame(nil, &frameInput{})
	if err == nil {
		t.Fatal("fallback failure was swallowed")
	}
	if got := err.Error(); got != "cpu backend: closed" {
		t.Fatalf("error %q", got)
	}
}
