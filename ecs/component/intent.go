package component

// Intent is the desired motion for a character this tick, normalized to
// [-1, 1] per axis. When Aim is set, facing points at (AimX, AimY) in
// world space instead of following velocity.
type Intent struct {
	MoveX float64
	MoveY float64
	Aim   bool
	AimX  float64
	AimY  float64
}

var IntentComponent = NewComponent[Intent]()
