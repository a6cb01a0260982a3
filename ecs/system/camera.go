package system

import (
	"sightline/common"
	"sightline/ecs"
	"sightline/ecs/component"
)

// CameraSystem eases the camera toward the local character, keeping it
// centered on the base resolution.
type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		cam, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = cam
	}

	target, ok := w.First(component.LocalPlayerTagComponent.Kind())
	if !ok {
		return
	}
	targetT, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	camT, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	wantX := targetT.X - common.BaseWidth/2/zoom
	wantY := targetT.Y - common.BaseHeight/2/zoom

	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		camT.X = wantX
		camT.Y = wantY
		return
	}
	camT.X = common.Lerp(camT.X, wantX, smooth)
	camT.Y = common.Lerp(camT.Y, wantY, smooth)
}
