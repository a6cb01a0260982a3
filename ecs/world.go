package ecs

import (
	"sightline/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, per-kind component stores, the system order, and
// the frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems in registration order, then flushes the event
// queue. Events pushed during a tick are visible to the systems that run
// after the producer within the same tick, and to nobody afterwards.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Systems returns the registered systems in update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return append([]System(nil), w.systems...)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// DestroyEntity kills an entity and drops all of its components. It
// returns false if the handle was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	id := int(e.id())
	for _, store := range w.stores {
		store.Remove(id)
	}
	return true
}

// First returns some entity holding the given component kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil || kind == nil {
		return 0, false
	}
	store := w.stores[kind.ID()]
	for _, id := range store.Entities() {
		e := w.entities.current(entityID(id))
		if e.Valid() {
			return e, true
		}
	}
	return 0, false
}

// Query returns the entities holding every given component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	ids := w.stores[kinds[0].ID()].Entities()
	for _, k := range kinds[1:] {
		set := w.stores[k.ID()]
		if set.Len() == 0 {
			return nil
		}
		filtered := ids[:0:0]
		for _, id := range ids {
			if set.Has(id) {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		e := w.entities.current(entityID(id))
		if e.Valid() {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	return w.stores[id]
}

func (w *World) ensureStore(id component.ComponentID) *SparseSet {
	if w.stores == nil {
		w.stores = map[component.ComponentID]*SparseSet{}
	}
	store, ok := w.stores[id]
	if !ok {
		store = &SparseSet{}
		w.stores[id] = store
	}
	return store
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity kills an entity, dropping all of its components.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// Add attaches a component value to a live entity, replacing any previous
// value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.ensureStore(kind.ID()).Set(int(e.id()), value)
	return nil
}

// Get returns the component of the given kind for a live entity.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(kind.ID()).Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// Has reports whether a live entity holds the given component kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID()).Has(int(e.id()))
}

// Remove detaches the component of the given kind from a live entity.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID()).Remove(int(e.id()))
}

// ForEach visits every live entity holding the component kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || !kind.Valid() || fn == nil {
		return
	}
	store := w.store(kind.ID())
	for _, id := range append([]int(nil), store.Entities()...) {
		e := w.entities.current(entityID(id))
		if !e.Valid() {
			continue
		}
		if v, ok := store.Get(id).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every live entity holding both component kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa, sb := w.store(ka.ID()), w.store(kb.ID())
	for _, id := range IntersectEntities(sa, sb) {
		e := w.entities.current(entityID(id))
		if !e.Valid() {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 visits every live entity holding all three component kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	sa, sb, sc := w.store(ka.ID()), w.store(kb.ID()), w.store(kc.ID())
	for _, id := range IntersectEntities(sa, sb) {
		if !sc.Has(id) {
			continue
		}
		e := w.entities.current(entityID(id))
		if !e.Valid() {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		c, okC := sc.Get(id).(*C)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// ForEach4 visits every live entity holding all four component kinds.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil {
		return
	}
	sa, sb := w.store(ka.ID()), w.store(kb.ID())
	sc, sd := w.store(kc.ID()), w.store(kd.ID())
	for _, id := range IntersectEntities(sa, sb) {
		if !sc.Has(id) || !sd.Has(id) {
			continue
		}
		e := w.entities.current(entityID(id))
		if !e.Valid() {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		c, okC := sc.Get(id).(*C)
		d, okD := sd.Get(id).(*D)
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}
