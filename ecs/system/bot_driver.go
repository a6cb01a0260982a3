package system

import (
	"log"
	"math/rand"

	"github.com/google/uuid"

	"sightline/bots"
	"sightline/ecs"
	"sightline/ecs/component"
	"sightline/session"
)

// BotDriverSystem runs each bot character's behavior script on its tick
// interval and writes the result into the character's intent. A script
// error disables that driver and logs once; the bot just stops moving.
type BotDriverSystem struct {
	session *session.Manager
	rng     *rand.Rand

	runtimes map[ecs.Entity]*bots.Runtime
}

func NewBotDriverSystem(s *session.Manager, rng *rand.Rand) *BotDriverSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &BotDriverSystem{
		session:  s,
		rng:      rng,
		runtimes: map[ecs.Entity]*bots.Runtime{},
	}
}

func (s *BotDriverSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.session == nil {
		return
	}

	def := s.session.Definition()
	s.pruneRuntimes(w)

	ecs.ForEach4(w,
		component.BotDriverComponent.Kind(),
		component.IntentComponent.Kind(),
		component.TransformComponent.Kind(),
		component.CharacterRootComponent.Kind(),
		func(e ecs.Entity, driver *component.BotDriver, intent *component.Intent, t *component.Transform, root *component.CharacterRoot) {
			if driver.Failed {
				return
			}
			driver.Tick++
			if driver.TickEvery > 1 && driver.Tick%driver.TickEvery != 0 {
				return
			}

			rt, ok := s.runtimes[e]
			if !ok {
				var err error
				rt, err = bots.NewRuntime(driver.Script)
				if err != nil {
					log.Printf("bots: entity=%v script %q disabled: %v", e, driver.Script, err)
					driver.Failed = true
					return
				}
				s.runtimes[e] = rt
			}

			team := 0
			if p, ok := s.session.Get(root.Player); ok {
				team = int(p.Team)
			}

			mx, my, err := rt.Step(bots.Self{
				X:      t.X,
				Y:      t.Y,
				Facing: t.Facing,
				Team:   team,
				Rand:   s.rng.Float64,
			}, bots.Arena{
				Width:   def.Width,
				Height:  def.Height,
				Enemies: s.enemyPositions(w, root.Player),
			})
			if err != nil {
				log.Printf("bots: entity=%v script %q disabled: %v", e, driver.Script, err)
				driver.Failed = true
				return
			}

			intent.MoveX = mx
			intent.MoveY = my
		})
}

// enemyPositions collects live character positions on teams other than
// the given player's.
func (s *BotDriverSystem) enemyPositions(w *ecs.World, player uuid.UUID) []bots.Vec2 {
	self, ok := s.session.Get(player)
	if !ok {
		return nil
	}
	var out []bots.Vec2
	ecs.ForEach2(w, component.CharacterRootComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, root *component.CharacterRoot, t *component.Transform) {
			other, ok := s.session.Get(root.Player)
			if !ok || other.ID == self.ID || other.Team == self.Team {
				return
			}
			out = append(out, bots.Vec2{X: t.X, Y: t.Y})
		})
	return out
}

// pruneRuntimes drops cached runtimes for dead characters so respawned
// bots start from fresh script state.
func (s *BotDriverSystem) pruneRuntimes(w *ecs.World) {
	for e := range s.runtimes {
		if !w.IsAlive(e) {
			delete(s.runtimes, e)
		}
	}
}
