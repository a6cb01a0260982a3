package system

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sightline/ecs"
	"sightline/ecs/component"
	"sightline/overlay"
)

func TestBeamStyleAppliesSettingsEveryTick(t *testing.T) {
	w := ecs.NewWorld()
	settings := overlay.Defaults()
	w.AddSystem(NewBeamStyleSystem(&settings))

	parent := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, parent, component.TransformComponent.Kind(), &component.Transform{}))

	a := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, a, component.AttachmentComponent.Kind(),
		&component.Attachment{Parent: uint64(parent)}))
	b := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, b, component.AttachmentComponent.Kind(),
		&component.Attachment{Parent: uint64(parent)}))
	beamEnt := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, beamEnt, component.BeamComponent.Kind(),
		&component.Beam{From: uint64(a), To: uint64(b)}))

	settings.R, settings.G, settings.B = 10, 20, 30
	settings.Emission = 0.5
	settings.Length = 42
	settings.Thickness = 3.5
	settings.VerticalOffset = 1.25

	w.Update()

	beam, ok := ecs.Get(w, beamEnt, component.BeamComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, beam.Color)
	assert.Equal(t, 3.5, beam.Width)
	assert.Equal(t, 0.5, beam.Emission)

	from, _ := ecs.Get(w, a, component.AttachmentComponent.Kind())
	to, _ := ecs.Get(w, b, component.AttachmentComponent.Kind())
	assert.Equal(t, 0.0, from.LocalX)
	assert.Equal(t, -1.25, from.LocalY)
	assert.Equal(t, 42.0, to.LocalX)
	assert.Equal(t, -1.25, to.LocalY)
}
