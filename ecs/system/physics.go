package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"sightline/ecs"
	"sightline/ecs/component"
)

// PhysicsSystem owns the chipmunk space: zero gravity, circle bodies for
// characters, static segments for walls. Intents become body velocities;
// transforms sync back after each step.
type PhysicsSystem struct {
	space     *cp.Space
	moveSpeed float64

	bodies map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(moveSpeed float64) *PhysicsSystem {
	if moveSpeed <= 0 {
		moveSpeed = 140
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:     space,
		moveSpeed: moveSpeed,
		bodies:    map[ecs.Entity]*bodyInfo{},
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanup(w)
	ps.syncBodies(w)
	ps.applyIntents(w)

	ps.space.Step(1.0 / 60.0)

	ps.syncTransforms(w)
}

// cleanup removes space objects whose entity died (despawned character).
func (ps *PhysicsSystem) cleanup(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if !info.static && info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
			if _, ok := ps.bodies[e]; ok {
				return
			}
			info := ps.createBody(bodyComp, t)
			if info == nil {
				return
			}
			ps.bodies[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		})
}

func (ps *PhysicsSystem) createBody(bodyComp *component.PhysicsBody, t *component.Transform) *bodyInfo {
	if bodyComp.Static {
		a := cp.Vector{X: t.X, Y: t.Y}
		b := cp.Vector{X: t.X + bodyComp.SegDX, Y: t.Y + bodyComp.SegDY}
		shape := cp.NewSegment(ps.space.StaticBody, a, b, 2)
		shape.SetElasticity(0.2)
		shape.SetFriction(0.6)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	radius := bodyComp.Radius
	if radius <= 0 {
		radius = 12
	}
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	ps.space.AddBody(body)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetElasticity(0.2)
	shape.SetFriction(0.6)
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) applyIntents(w *ecs.World) {
	ecs.ForEach2(w, component.IntentComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, intent *component.Intent, bodyComp *component.PhysicsBody) {
			if bodyComp.Body == nil || bodyComp.Static {
				return
			}
			mx, my := intent.MoveX, intent.MoveY
			if l := math.Hypot(mx, my); l > 1 {
				mx /= l
				my /= l
			}
			bodyComp.Body.SetVelocity(mx*ps.moveSpeed, my*ps.moveSpeed)
		})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
			if bodyComp.Body == nil || bodyComp.Static {
				return
			}
			pos := bodyComp.Body.Position()
			t.X = pos.X
			t.Y = pos.Y

			intent, _ := ecs.Get(w, e, component.IntentComponent.Kind())
			if intent != nil && intent.Aim {
				t.Facing = math.Atan2(intent.AimY-t.Y, intent.AimX-t.X)
				return
			}
			v := bodyComp.Body.Velocity()
			if math.Hypot(v.X, v.Y) > 1 {
				t.Facing = math.Atan2(v.Y, v.X)
			}
		})
}
