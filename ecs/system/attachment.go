package system

import (
	"math"

	"sightline/ecs"
	"sightline/ecs/component"
)

// AttachmentSystem resolves attachment world positions from the parent
// root's transform and facing each tick. Orphaned attachments (dead
// parent) are destroyed.
type AttachmentSystem struct{}

func NewAttachmentSystem() *AttachmentSystem { return &AttachmentSystem{} }

func (s *AttachmentSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AttachmentComponent.Kind(), func(e ecs.Entity, att *component.Attachment) {
		parent := ecs.Entity(att.Parent)
		if !w.IsAlive(parent) {
			ecs.DestroyEntity(w, e)
			return
		}
		t, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
		if !ok {
			att.Resolved = false
			return
		}

		sin, cos := math.Sincos(t.Facing)
		att.WorldX = t.X + cos*att.LocalX - sin*att.LocalY
		att.WorldY = t.Y + sin*att.LocalX + cos*att.LocalY
		att.Resolved = true
	})
}
