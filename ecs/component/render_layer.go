package component

// RenderLayer orders draws; lower indices draw first.
type RenderLayer struct {
	Index int
}

const (
	LayerArena = iota
	LayerCharacters
	LayerBeams
	LayerEffects
)

var RenderLayerComponent = NewComponent[RenderLayer]()
