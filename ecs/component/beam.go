package component

import "image/color"

// Beam is a visual line between two attachment entities (ecs.Entity is
// uint64). Style fields are rewritten from the overlay settings every
// frame, so live edits never require recreating the beam.
type Beam struct {
	From uint64
	To   uint64

	Color    color.NRGBA
	Width    float64
	Emission float64
}

var BeamComponent = NewComponent[Beam]()
