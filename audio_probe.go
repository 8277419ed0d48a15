package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"instaferogram/internal/probe"
)

// startAudioProbe plays a tone following the field at g.probePoint.
func (g *Game) startAudioProbe() error {
	g.tone = probe.NewTone(audioSampleRate)
	g.audioCtx = audio.NewContext(audioSampleRate)
	player, err := g.audioCtx.NewPlayer(g.tone)
	if err != nil {
		g.tone = nil
		return fmt.Errorf("creating audio player: %w", err)
	}
	player.SetBufferSize(audioBufferDuration)
	player.Play()
	g.audioPlayer = player
	return nil
}
