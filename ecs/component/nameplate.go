package component

import "image/color"

// Nameplate is a short text label drawn above the entity.
type Nameplate struct {
	Text    string
	Color   color.Color
	OffsetY float64
}

var NameplateComponent = NewComponent[Nameplate]()
