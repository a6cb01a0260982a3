package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sightline/arena"
	"sightline/bots"
	"sightline/common"
	"sightline/ecs"
	"sightline/ecs/component"
	"sightline/ecs/system"
	"sightline/overlay"
	"sightline/session"
)

const localPlayerName = "you"

var wallColor = color.NRGBA{R: 120, G: 125, B: 135, A: 255}

type Game struct {
	world    *ecs.World
	session  *session.Manager
	tracker  *system.BeamTrackerSystem
	settings overlay.Settings

	panel *overlayPanel
	audio ecs.Entity

	arenaPath string
	def       *arena.Definition
	watcher   *arena.Watcher

	trace []string
	debug bool
	rng   *rand.Rand
}

func NewGame(arenaPath string, debug bool) (*Game, error) {
	def, err := arena.LoadFile(arenaPath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		settings:  overlay.Defaults(),
		arenaPath: arenaPath,
		debug:     debug,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.buildWorld(def)
	g.panel = newOverlayPanel(&g.settings, g.playTone)

	if debug {
		watcher, err := arena.NewWatcher("arena")
		if err != nil {
			log.Printf("game: arena watcher disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

// buildWorld assembles a fresh world from an arena definition. The
// overlay settings and the panel survive rebuilds; everything else is
// recreated.
func (g *Game) buildWorld(def *arena.Definition) {
	w := ecs.NewWorld()
	g.world = w
	g.def = def

	g.session = session.NewManager(w, def, g.rng)
	g.tracker = system.NewBeamTrackerSystem(g.session, &g.settings)

	g.spawnWalls(def)
	g.spawnCamera(def)
	g.audio = newToneEntity(w, newAudioContext())

	w.AddSystem(system.NewInputSystem())
	w.AddSystem(system.NewBotDriverSystem(g.session, g.rng))
	w.AddSystem(bots.NewDirector(g.session, def, g.rng))
	w.AddSystem(g.session)
	w.AddSystem(system.NewPhysicsSystem(def.MoveSpeed))
	w.AddSystem(system.NewCameraSystem())
	w.AddSystem(g.tracker)
	w.AddSystem(system.NewBeamStyleSystem(&g.settings))
	w.AddSystem(system.NewAttachmentSystem())
	w.AddSystem(&eventTap{game: g})
	w.AddSystem(system.NewAudioSystem())
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(system.NewRenderSystem(def.Width, def.Height))

	g.session.JoinLocal(localPlayerName, def.Teams[0].ID)
}

func (g *Game) spawnWalls(def *arena.Definition) {
	walls := make([]arena.Wall, 0, len(def.Walls)+4)
	walls = append(walls, def.Walls...)
	// arena border
	walls = append(walls,
		arena.Wall{X1: 0, Y1: 0, X2: def.Width, Y2: 0},
		arena.Wall{X1: def.Width, Y1: 0, X2: def.Width, Y2: def.Height},
		arena.Wall{X1: def.Width, Y1: def.Height, X2: 0, Y2: def.Height},
		arena.Wall{X1: 0, Y1: def.Height, X2: 0, Y2: 0},
	)

	for _, wall := range walls {
		e := ecs.CreateEntity(g.world)
		mustAdd(g.world, e, component.TransformComponent.Kind(), &component.Transform{X: wall.X1, Y: wall.Y1})
		mustAdd(g.world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Static: true,
			SegDX:  wall.X2 - wall.X1,
			SegDY:  wall.Y2 - wall.Y1,
		})
		mustAdd(g.world, e, component.ShapeComponent.Kind(), &component.Shape{
			Kind:    component.ShapeSegment,
			DX:      wall.X2 - wall.X1,
			DY:      wall.Y2 - wall.Y1,
			Outline: wallColor,
		})
		mustAdd(g.world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerArena})
	}
}

func (g *Game) spawnCamera(def *arena.Definition) {
	e := ecs.CreateEntity(g.world)
	mustAdd(g.world, e, component.TransformComponent.Kind(), &component.Transform{
		X: def.Width/2 - common.BaseWidth/2,
		Y: def.Height/2 - common.BaseHeight/2,
	})
	mustAdd(g.world, e, component.CameraComponent.Kind(), &component.Camera{Zoom: 1, Smoothness: 0.12})
	mustAdd(g.world, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.toggleVisible()
	}

	g.pollWatcher()

	g.panel.ui.Update()
	g.world.Update()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		g.reloadArena(path)
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("game: arena watcher: %v", err)
		}
	default:
	}
}

// reloadArena rebuilds the world from the edited file. Overlay settings
// and the panel position are kept; session state starts over.
func (g *Game) reloadArena(path string) {
	def, err := arena.LoadFile(path)
	if err != nil {
		log.Printf("game: arena reload rejected: %v", err)
		return
	}
	log.Printf("game: arena %q reloaded", def.Name)
	g.trace = nil
	g.buildWorld(def)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	g.panel.ui.Draw(screen)

	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nplayers: %d  beams: %d  entities: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		len(g.session.Players()), g.tracker.TrackedCount(), len(ecs.Entities(g.world)))
	for _, line := range g.trace {
		msg += "\n" + line
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// playTone raises the play flag on a named cue. The panel uses it for
// UI ticks.
func (g *Game) playTone(name string) {
	if comp, ok := ecs.Get(g.world, g.audio, component.AudioComponent.Kind()); ok {
		comp.Request(name)
	}
}

func (g *Game) playerName(id uuid.UUID) string {
	if p, ok := g.session.Get(id); ok {
		return p.Name
	}
	return id.String()[:8]
}

const traceTail = 8

func (g *Game) pushTrace(format string, args ...any) {
	g.trace = append(g.trace, fmt.Sprintf(format, args...))
	if len(g.trace) > traceTail {
		g.trace = g.trace[len(g.trace)-traceTail:]
	}
}

// eventTap feeds the debug trace and the join/leave audio pings from
// this tick's session events.
type eventTap struct {
	game *Game
}

func (t *eventTap) Update(w *ecs.World) {
	g := t.game
	for _, evt := range w.Events().Pending() {
		switch data := evt.Data.(type) {
		case session.PlayerJoined:
			if g.debug {
				g.playTone(tonePing)
			}
			g.pushTrace("%s %s", evt.Type, g.playerName(data.Player))
		case session.PlayerLeft:
			if g.debug {
				g.playTone(toneDrop)
			}
			g.pushTrace("%s %s", evt.Type, g.playerName(data.Player))
		case session.TeamChanged:
			g.pushTrace("%s %s %d->%d", evt.Type, g.playerName(data.Player), data.Old, data.New)
		case session.CharacterSpawned:
			g.pushTrace("%s %s", evt.Type, g.playerName(data.Player))
		case session.CharacterDespawned:
			g.pushTrace("%s %s", evt.Type, g.playerName(data.Player))
		}
	}
}

func newAudioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(sampleRate)
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	if err := ecs.Add(w, e, kind, v); err != nil {
		panic(fmt.Sprintf("game: add component: %v", err))
	}
}
