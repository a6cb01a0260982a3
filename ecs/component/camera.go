package component

type Camera struct {
	Zoom       float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
