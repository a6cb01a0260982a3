package component

// Transform is a world-space position plus a facing angle in radians
// (0 = +X, increasing clockwise in screen coordinates).
type Transform struct {
	X      float64
	Y      float64
	Facing float64
}

var TransformComponent = NewComponent[Transform]()
