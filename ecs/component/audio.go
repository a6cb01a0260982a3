package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds a set of named tone players. Systems request playback by
// flipping Play[i]; the audio system consumes the flags each tick.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
}

// Request flips the play flag for a named clip.
func (a *Audio) Request(name string) {
	if a == nil {
		return
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return
		}
	}
}

var AudioComponent = NewComponent[Audio]()
