package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"sightline/ecs"
	"sightline/ecs/component"
)

// InputSystem turns keyboard, gamepad and mouse state into the local
// character's intent. Facing follows velocity unless the right mouse
// button pins it to the cursor.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX := 0.0
	moveY := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveY += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX = lx
			moveY = ly
		}
	}

	aim := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	aimX, aimY := 0.0, 0.0
	if aim {
		camX, camY, zoom := cameraView(w)
		cx, cy := ebiten.CursorPosition()
		aimX = camX + float64(cx)/zoom
		aimY = camY + float64(cy)/zoom
	}

	ecs.ForEach2(w, component.LocalPlayerTagComponent.Kind(), component.IntentComponent.Kind(),
		func(_ ecs.Entity, _ *component.LocalPlayerTag, intent *component.Intent) {
			intent.MoveX = moveX
			intent.MoveY = moveY
			intent.Aim = aim
			intent.AimX = aimX
			intent.AimY = aimY
		})
}

// cameraView returns the camera's world-space top-left corner and zoom,
// defaulting to identity when no camera exists yet.
func cameraView(w *ecs.World) (float64, float64, float64) {
	camX, camY, zoom := 0.0, 0.0, 1.0
	cam, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if t, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
		camX = t.X
		camY = t.Y
	}
	if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	return camX, camY, zoom
}
