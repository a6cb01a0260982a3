package system

import (
	"sightline/ecs"
	"sightline/ecs/component"
)

func mustAdd[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	if err := ecs.Add(w, e, kind, v); err != nil {
		panic("system: add component: " + err.Error())
	}
}
