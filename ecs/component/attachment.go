package component

// Attachment is an anchor point fixed in the local space of a parent root
// entity (ecs.Entity is uint64). The local offset is rotated by the
// parent's facing when resolved; WorldX/WorldY hold the last resolved
// world position.
type Attachment struct {
	Parent uint64
	LocalX float64
	LocalY float64

	WorldX   float64
	WorldY   float64
	Resolved bool
}

var AttachmentComponent = NewComponent[Attachment]()
