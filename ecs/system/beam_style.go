package system

import (
	"sightline/ecs"
	"sightline/ecs/component"
	"sightline/overlay"
)

// BeamStyleSystem copies the current overlay settings onto every live
// beam and its attachments each tick, so panel edits take effect without
// recreating anything.
type BeamStyleSystem struct {
	settings *overlay.Settings
}

func NewBeamStyleSystem(settings *overlay.Settings) *BeamStyleSystem {
	return &BeamStyleSystem{settings: settings}
}

func (s *BeamStyleSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.settings == nil {
		return
	}
	cfg := *s.settings

	ecs.ForEach(w, component.BeamComponent.Kind(), func(_ ecs.Entity, beam *component.Beam) {
		beam.Color = cfg.Color()
		beam.Width = cfg.Thickness
		beam.Emission = cfg.Emission

		if att, ok := ecs.Get(w, ecs.Entity(beam.From), component.AttachmentComponent.Kind()); ok {
			att.LocalX = 0
			att.LocalY = -cfg.VerticalOffset
		}
		if att, ok := ecs.Get(w, ecs.Entity(beam.To), component.AttachmentComponent.Kind()); ok {
			att.LocalX = cfg.Length
			att.LocalY = -cfg.VerticalOffset
		}
	})
}
