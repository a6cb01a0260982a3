package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sightline/ecs"
	"sightline/ecs/component"
)

func addAttachment(t *testing.T, w *ecs.World, parent ecs.Entity, localX, localY float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	err := ecs.Add(w, e, component.AttachmentComponent.Kind(), &component.Attachment{
		Parent: uint64(parent),
		LocalX: localX,
		LocalY: localY,
	})
	require.NoError(t, err)
	return e
}

func TestAttachmentResolvesRotatedOffset(t *testing.T) {
	tests := []struct {
		name           string
		facing         float64
		localX, localY float64
		wantX, wantY   float64
	}{
		{name: "facing right", facing: 0, localX: 10, localY: 0, wantX: 110, wantY: 200},
		{name: "facing down", facing: math.Pi / 2, localX: 10, localY: 0, wantX: 100, wantY: 210},
		{name: "facing left", facing: math.Pi, localX: 10, localY: 0, wantX: 90, wantY: 200},
		{name: "offset above root", facing: 0, localX: 0, localY: -3, wantX: 100, wantY: 197},
		{name: "offset rotates with facing", facing: math.Pi / 2, localX: 0, localY: -3, wantX: 103, wantY: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.AddSystem(NewAttachmentSystem())

			parent := ecs.CreateEntity(w)
			require.NoError(t, ecs.Add(w, parent, component.TransformComponent.Kind(),
				&component.Transform{X: 100, Y: 200, Facing: tt.facing}))
			att := addAttachment(t, w, parent, tt.localX, tt.localY)

			w.Update()

			got, ok := ecs.Get(w, att, component.AttachmentComponent.Kind())
			require.True(t, ok)
			assert.True(t, got.Resolved)
			assert.InDelta(t, tt.wantX, got.WorldX, 1e-9)
			assert.InDelta(t, tt.wantY, got.WorldY, 1e-9)
		})
	}
}

func TestAttachmentUnresolvedWithoutParentTransform(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAttachmentSystem())

	parent := ecs.CreateEntity(w)
	att := addAttachment(t, w, parent, 5, 0)

	w.Update()

	got, ok := ecs.Get(w, att, component.AttachmentComponent.Kind())
	require.True(t, ok)
	assert.False(t, got.Resolved)
}

func TestOrphanedAttachmentIsDestroyed(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAttachmentSystem())

	parent := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, parent, component.TransformComponent.Kind(), &component.Transform{}))
	att := addAttachment(t, w, parent, 5, 0)

	w.Update()
	require.True(t, w.IsAlive(att))

	w.DestroyEntity(parent)
	w.Update()

	assert.False(t, w.IsAlive(att))
}
