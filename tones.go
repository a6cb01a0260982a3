package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"sightline/ecs"
	"sightline/ecs/component"
)

const sampleRate = 44100

const (
	toneTick = "tick"
	tonePing = "ping"
	toneDrop = "drop"
)

// synthTone renders a decaying sine blip as 16-bit stereo PCM. All cues
// are generated at startup; no audio assets ship with the binary.
func synthTone(freq, seconds float64) []byte {
	samples := int(seconds * sampleRate)
	pcm := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		env := 1 - float64(i)/float64(samples)
		v := int16(math.Sin(2*math.Pi*freq*t) * env * env * math.MaxInt16 * 0.6)
		pcm[i*4] = byte(v)
		pcm[i*4+1] = byte(v >> 8)
		pcm[i*4+2] = byte(v)
		pcm[i*4+3] = byte(v >> 8)
	}
	return pcm
}

// newToneEntity creates the singleton audio cue entity. A nil context
// disables cues entirely; systems still flip play flags, nothing listens.
func newToneEntity(w *ecs.World, ctx *audio.Context) ecs.Entity {
	tones := []struct {
		name    string
		freq    float64
		seconds float64
	}{
		{toneTick, 1320, 0.06},
		{tonePing, 880, 0.15},
		{toneDrop, 523, 0.15},
	}

	comp := &component.Audio{}
	for _, tone := range tones {
		comp.Names = append(comp.Names, tone.name)
		comp.Volume = append(comp.Volume, 0.4)
		comp.Play = append(comp.Play, false)
		if ctx != nil {
			comp.Players = append(comp.Players, ctx.NewPlayerFromBytes(synthTone(tone.freq, tone.seconds)))
		} else {
			comp.Players = append(comp.Players, nil)
		}
	}

	e := ecs.CreateEntity(w)
	mustAdd(w, e, component.AudioComponent.Kind(), comp)
	return e
}
