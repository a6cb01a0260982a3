// Package session owns the player registry: who is in the arena, which
// team they are on, and whether their character is currently spawned.
// Every life-cycle operation emits a typed event on the world queue so
// downstream systems (the beam tracker in particular) can react without
// polling.
package session

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"sightline/arena"
	"sightline/common"
	"sightline/ecs"
	"sightline/ecs/component"
)

// Player is one registry entry. Character is the root entity handle, or
// 0 while no character is spawned.
type Player struct {
	ID        uuid.UUID
	Name      string
	Team      arena.TeamID
	Local     bool
	Script    string
	Character ecs.Entity
}

// Manager is the player registry. It also runs as a system to tick
// pending spawn timers.
type Manager struct {
	w   *ecs.World
	def *arena.Definition
	rng *rand.Rand

	players map[uuid.UUID]*Player
	order   []uuid.UUID
	localID uuid.UUID

	pending  map[uuid.UUID]int
	spawnIdx map[arena.TeamID]int
}

func NewManager(w *ecs.World, def *arena.Definition, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Manager{
		w:        w,
		def:      def,
		rng:      rng,
		players:  map[uuid.UUID]*Player{},
		pending:  map[uuid.UUID]int{},
		spawnIdx: map[arena.TeamID]int{},
	}
}

// Update ticks pending spawn timers. Registered as a regular system so
// spawns land at a defined point in the frame, before the beam tracker.
func (m *Manager) Update(w *ecs.World) {
	if m == nil {
		return
	}
	for id, frames := range m.pending {
		if frames > 1 {
			m.pending[id] = frames - 1
			continue
		}
		delete(m.pending, id)
		m.SpawnCharacter(id)
	}
}

// JoinLocal registers the local player. Called exactly once at startup;
// the local player never leaves.
func (m *Manager) JoinLocal(name string, team arena.TeamID) uuid.UUID {
	id := m.join(name, team, true, "")
	m.localID = id
	return id
}

// Join registers a remote player and schedules a character spawn after
// the arena spawn delay.
func (m *Manager) Join(name string, team arena.TeamID, script string) uuid.UUID {
	return m.join(name, team, false, script)
}

func (m *Manager) join(name string, team arena.TeamID, local bool, script string) uuid.UUID {
	p := &Player{
		ID:     uuid.New(),
		Name:   name,
		Team:   team,
		Local:  local,
		Script: script,
	}
	m.players[p.ID] = p
	m.order = append(m.order, p.ID)
	m.w.Events().Push(ecs.Event{Type: EventPlayerJoined, Data: PlayerJoined{Player: p.ID}})
	m.pending[p.ID] = common.Frames(m.def.SpawnDelay)
	return p.ID
}

// Leave removes a player, despawning their character first. The local
// player cannot leave.
func (m *Manager) Leave(id uuid.UUID) {
	p, ok := m.players[id]
	if !ok || p.Local {
		return
	}
	delete(m.pending, id)
	m.DespawnCharacter(id)
	delete(m.players, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.w.Events().Push(ecs.Event{Type: EventPlayerLeft, Data: PlayerLeft{Player: id}})
}

// SetTeam changes a player's team, spawned or not, and emits
// TeamChanged. A spawned character is recolored in place.
func (m *Manager) SetTeam(id uuid.UUID, team arena.TeamID) {
	p, ok := m.players[id]
	if !ok || p.Team == team {
		return
	}
	old := p.Team
	p.Team = team

	if p.Character.Valid() && m.w.IsAlive(p.Character) {
		fill := m.teamColor(team)
		if shape, ok := ecs.Get(m.w, p.Character, component.ShapeComponent.Kind()); ok {
			shape.Fill = fill
		}
		if plate, ok := ecs.Get(m.w, p.Character, component.NameplateComponent.Kind()); ok {
			plate.Color = fill
		}
	}

	m.w.Events().Push(ecs.Event{Type: EventTeamChanged, Data: TeamChanged{Player: id, Old: old, New: team}})
}

// SpawnCharacter creates the character root entity at a team spawn
// point. A player with a live character keeps it (at most one each).
func (m *Manager) SpawnCharacter(id uuid.UUID) {
	p, ok := m.players[id]
	if !ok {
		return
	}
	if p.Character.Valid() && m.w.IsAlive(p.Character) {
		return
	}

	x, y := m.spawnPoint(p.Team)
	fill := m.teamColor(p.Team)
	radius := m.def.CharacterRadius
	if radius <= 0 {
		radius = 12
	}

	e := ecs.CreateEntity(m.w)
	facing := math.Atan2(m.def.Height/2-y, m.def.Width/2-x)
	mustAdd(m.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Facing: facing})
	mustAdd(m.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: radius, Mass: 1})
	mustAdd(m.w, e, component.ShapeComponent.Kind(), &component.Shape{
		Kind:    component.ShapeCircle,
		Radius:  radius,
		Fill:    fill,
		Outline: color.NRGBA{R: 20, G: 20, B: 20, A: 255},
	})
	mustAdd(m.w, e, component.NameplateComponent.Kind(), &component.Nameplate{Text: p.Name, Color: fill, OffsetY: -(radius + 10)})
	mustAdd(m.w, e, component.CharacterRootComponent.Kind(), &component.CharacterRoot{Player: p.ID})
	mustAdd(m.w, e, component.IntentComponent.Kind(), &component.Intent{})
	mustAdd(m.w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerCharacters})
	if p.Local {
		mustAdd(m.w, e, component.LocalPlayerTagComponent.Kind(), &component.LocalPlayerTag{})
	} else if p.Script != "" {
		mustAdd(m.w, e, component.BotDriverComponent.Kind(), &component.BotDriver{Script: p.Script, TickEvery: 10})
	}

	p.Character = e
	m.spawnFlash(x, y, fill)
	m.w.Events().Push(ecs.Event{Type: EventCharacterSpawned, Data: CharacterSpawned{Player: p.ID, Root: e}})
}

// DespawnCharacter destroys the character root entity if one is live.
// Overlay visuals anchored to it are torn down by the beam tracker when
// it sees the event.
func (m *Manager) DespawnCharacter(id uuid.UUID) {
	p, ok := m.players[id]
	if !ok || !p.Character.Valid() {
		return
	}
	root := p.Character
	p.Character = 0
	if !m.w.IsAlive(root) {
		return
	}
	if t, ok := ecs.Get(m.w, root, component.TransformComponent.Kind()); ok {
		m.spawnFlash(t.X, t.Y, m.teamColor(p.Team))
	}
	m.w.DestroyEntity(root)
	m.w.Events().Push(ecs.Event{Type: EventCharacterDespawned, Data: CharacterDespawned{Player: p.ID, Root: root}})
}

// Kill despawns the character and schedules a respawn after the arena
// respawn delay.
func (m *Manager) Kill(id uuid.UUID) {
	p, ok := m.players[id]
	if !ok {
		return
	}
	if !p.Character.Valid() || !m.w.IsAlive(p.Character) {
		return
	}
	m.DespawnCharacter(id)
	m.pending[id] = common.Frames(m.def.RespawnDelay)
}

// Players returns all registered players in join order.
func (m *Manager) Players() []*Player {
	out := make([]*Player, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Get returns a player by id.
func (m *Manager) Get(id uuid.UUID) (*Player, bool) {
	p, ok := m.players[id]
	return p, ok
}

// Local returns the local player, or nil before JoinLocal.
func (m *Manager) Local() *Player {
	return m.players[m.localID]
}

// Definition returns the arena this session was built from.
func (m *Manager) Definition() *arena.Definition {
	return m.def
}

func (m *Manager) spawnPoint(team arena.TeamID) (float64, float64) {
	t, ok := m.def.TeamByID(team)
	if !ok || len(t.Spawns) == 0 {
		return m.def.Width / 2, m.def.Height / 2
	}
	idx := m.spawnIdx[team] % len(t.Spawns)
	m.spawnIdx[team]++
	s := t.Spawns[idx]
	// small jitter so respawns on the same point don't stack exactly
	return s.X + m.rng.Float64()*8 - 4, s.Y + m.rng.Float64()*8 - 4
}

func (m *Manager) teamColor(team arena.TeamID) color.NRGBA {
	if t, ok := m.def.TeamByID(team); ok {
		return t.Color.NRGBA()
	}
	return color.NRGBA{R: 200, G: 200, B: 200, A: 255}
}

func (m *Manager) spawnFlash(x, y float64, c color.NRGBA) {
	c.A = 110
	e := ecs.CreateEntity(m.w)
	mustAdd(m.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(m.w, e, component.ShapeComponent.Kind(), &component.Shape{Kind: component.ShapeCircle, Radius: 22, Fill: c})
	mustAdd(m.w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerEffects})
	mustAdd(m.w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 18})
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	if err := ecs.Add(w, e, kind, v); err != nil {
		panic("session: add component: " + err.Error())
	}
}
