package system

import (
	"github.com/google/uuid"

	"sightline/ecs"
	"sightline/ecs/component"
	"sightline/overlay"
	"sightline/session"
)

// BeamTrackerSystem maintains exactly one {attachment, attachment, beam}
// entity triple per eligible remote player with a live character. It is
// purely event-driven bookkeeping: session life-cycle events create and
// destroy triples, the enabled flag tears down or rebuilds everything,
// and a per-frame sweep catches roots that died without an event.
type BeamTrackerSystem struct {
	session  *session.Manager
	settings *overlay.Settings

	beams      map[uuid.UUID]beamVisual
	wasEnabled bool
}

type beamVisual struct {
	a    ecs.Entity
	b    ecs.Entity
	beam ecs.Entity
}

func NewBeamTrackerSystem(s *session.Manager, settings *overlay.Settings) *BeamTrackerSystem {
	return &BeamTrackerSystem{
		session:    s,
		settings:   settings,
		beams:      map[uuid.UUID]beamVisual{},
		wasEnabled: settings != nil && settings.Enabled,
	}
}

func (s *BeamTrackerSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.session == nil || s.settings == nil {
		return
	}

	if s.settings.Enabled != s.wasEnabled {
		s.wasEnabled = s.settings.Enabled
		if s.settings.Enabled {
			s.evaluateAll(w)
		} else {
			s.destroyAll(w)
		}
	}

	for _, evt := range w.Events().Pending() {
		switch data := evt.Data.(type) {
		case session.CharacterSpawned:
			s.ensure(w, data.Player)
		case session.CharacterDespawned:
			s.destroyFor(w, data.Player)
		case session.PlayerLeft:
			s.destroyFor(w, data.Player)
		case session.TeamChanged:
			local := s.session.Local()
			if local != nil && data.Player == local.ID {
				// the local side of every eligibility check changed
				s.evaluateAll(w)
			} else {
				s.evaluate(w, data.Player)
			}
		}
	}

	s.sweep(w)
}

// TrackedCount reports how many beam triples are live, for the debug HUD.
func (s *BeamTrackerSystem) TrackedCount() int {
	if s == nil {
		return 0
	}
	return len(s.beams)
}

// eligible reports whether a player should have a beam: a remote player
// on a different team than the local player. Shared "no team" counts as
// the same team.
func (s *BeamTrackerSystem) eligible(p *session.Player) bool {
	local := s.session.Local()
	if p == nil || local == nil || p.Local {
		return false
	}
	return p.Team != local.Team
}

// ensure creates the triple for a player if it should exist and does not
// yet. Processing the same spawn event twice never double-creates.
func (s *BeamTrackerSystem) ensure(w *ecs.World, id uuid.UUID) {
	if !s.settings.Enabled {
		return
	}
	p, ok := s.session.Get(id)
	if !ok || !s.eligible(p) {
		return
	}
	root := p.Character
	if !root.Valid() || !w.IsAlive(root) {
		return
	}

	if v, ok := s.beams[id]; ok {
		if w.IsAlive(v.a) && w.IsAlive(v.b) && w.IsAlive(v.beam) {
			return
		}
		s.destroyFor(w, id)
	}

	cfg := *s.settings
	a := ecs.CreateEntity(w)
	mustAdd(w, a, component.AttachmentComponent.Kind(), &component.Attachment{
		Parent: uint64(root),
		LocalY: -cfg.VerticalOffset,
	})
	b := ecs.CreateEntity(w)
	mustAdd(w, b, component.AttachmentComponent.Kind(), &component.Attachment{
		Parent: uint64(root),
		LocalX: cfg.Length,
		LocalY: -cfg.VerticalOffset,
	})
	beam := ecs.CreateEntity(w)
	mustAdd(w, beam, component.BeamComponent.Kind(), &component.Beam{
		From:     uint64(a),
		To:       uint64(b),
		Color:    cfg.Color(),
		Width:    cfg.Thickness,
		Emission: cfg.Emission,
	})
	mustAdd(w, beam, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerBeams})

	s.beams[id] = beamVisual{a: a, b: b, beam: beam}
}

// evaluate creates or destroys one player's triple to match eligibility.
func (s *BeamTrackerSystem) evaluate(w *ecs.World, id uuid.UUID) {
	p, ok := s.session.Get(id)
	if ok && s.eligible(p) && s.settings.Enabled {
		s.ensure(w, id)
		return
	}
	s.destroyFor(w, id)
}

func (s *BeamTrackerSystem) evaluateAll(w *ecs.World) {
	for _, p := range s.session.Players() {
		s.evaluate(w, p.ID)
	}
}

func (s *BeamTrackerSystem) destroyFor(w *ecs.World, id uuid.UUID) {
	v, ok := s.beams[id]
	if !ok {
		return
	}
	w.DestroyEntity(v.a)
	w.DestroyEntity(v.b)
	w.DestroyEntity(v.beam)
	delete(s.beams, id)
}

func (s *BeamTrackerSystem) destroyAll(w *ecs.World) {
	for id := range s.beams {
		s.destroyFor(w, id)
	}
}

// sweep tears down triples whose root entity died without a despawn
// event reaching us. Missing engine objects are a skip, not an error.
func (s *BeamTrackerSystem) sweep(w *ecs.World) {
	for id, v := range s.beams {
		att, ok := ecs.Get(w, v.a, component.AttachmentComponent.Kind())
		if !ok || !w.IsAlive(ecs.Entity(att.Parent)) {
			s.destroyFor(w, id)
		}
	}
}
