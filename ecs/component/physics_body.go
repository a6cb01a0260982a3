package component

import "github.com/jakecoffman/cp"

// PhysicsBody describes a chipmunk body for an entity. Body and Shape are
// populated lazily by the physics system on first sync. A static body with
// SegDX/SegDY set is a wall segment from (X, Y) to (X+SegDX, Y+SegDY).
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Radius float64
	Mass   float64
	Static bool
	SegDX  float64
	SegDY  float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
