package session

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"sightline/arena"
	"sightline/common"
	"sightline/ecs"
	"sightline/ecs/component"
)

func testDef() *arena.Definition {
	return &arena.Definition{
		Name:         "test",
		Width:        800,
		Height:       600,
		SpawnDelay:   0.05,
		RespawnDelay: 0.1,
		Teams: []arena.Team{
			{ID: 1, Name: "a", Spawns: []arena.Spawn{{X: 100, Y: 100}}},
			{ID: 2, Name: "b", Spawns: []arena.Spawn{{X: 700, Y: 500}}},
		},
	}
}

func newTestManager(t *testing.T) (*ecs.World, *Manager) {
	t.Helper()
	w := ecs.NewWorld()
	m := NewManager(w, testDef(), rand.New(rand.NewSource(7)))
	w.AddSystem(m)
	return w, m
}

// drainEvents collects this tick's event types, then runs the flush.
func drainEvents(w *ecs.World) []string {
	var types []string
	for _, evt := range w.Events().Pending() {
		types = append(types, evt.Type)
	}
	w.Update()
	return types
}

func tickUntilSpawned(t *testing.T, w *ecs.World, m *Manager, id uuid.UUID) ecs.Entity {
	t.Helper()
	for i := 0; i < common.TPS; i++ {
		w.Update()
		p, ok := m.Get(id)
		if !ok {
			t.Fatalf("player %v disappeared while waiting for spawn", id)
		}
		if p.Character.Valid() {
			return p.Character
		}
	}
	t.Fatalf("player %v never spawned", id)
	return 0
}

func TestJoinSchedulesSpawn(t *testing.T) {
	w, m := newTestManager(t)

	id := m.Join("bot", 1, "wander")
	types := drainEvents(w)
	if len(types) != 1 || types[0] != EventPlayerJoined {
		t.Fatalf("expected [player_joined], got %v", types)
	}

	root := tickUntilSpawned(t, w, m, id)
	if !w.IsAlive(root) {
		t.Fatal("spawned character not alive")
	}
	if cr, ok := ecs.Get(w, root, component.CharacterRootComponent.Kind()); !ok || cr.Player != id {
		t.Fatalf("character root not tagged with player id")
	}
	if !ecs.Has[component.BotDriver](w, root, component.BotDriverComponent.Kind()) {
		t.Fatal("bot character missing driver")
	}
}

func TestSpawnIsIdempotentPerPlayer(t *testing.T) {
	w, m := newTestManager(t)
	id := m.Join("bot", 1, "")
	root := tickUntilSpawned(t, w, m, id)

	m.SpawnCharacter(id)
	p, _ := m.Get(id)
	if p.Character != root {
		t.Fatalf("second spawn replaced the character: %v -> %v", root, p.Character)
	}
}

func TestLeaveDespawnsAndEmits(t *testing.T) {
	w, m := newTestManager(t)
	id := m.Join("bot", 1, "")
	root := tickUntilSpawned(t, w, m, id)
	w.Update()

	m.Leave(id)
	types := drainEvents(w)

	want := []string{EventCharacterDespawned, EventPlayerLeft}
	if len(types) != len(want) || types[0] != want[0] || types[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, types)
	}
	if w.IsAlive(root) {
		t.Fatal("character survived leave")
	}
	if _, ok := m.Get(id); ok {
		t.Fatal("player still registered after leave")
	}
}

func TestLeaveMidRespawnCancelsPendingSpawn(t *testing.T) {
	w, m := newTestManager(t)
	id := m.Join("bot", 1, "")
	tickUntilSpawned(t, w, m, id)
	w.Update()

	m.Kill(id)
	m.Leave(id)
	w.Update()

	for i := 0; i < common.TPS; i++ {
		w.Update()
	}
	if got := len(w.Query(component.CharacterRootComponent.Kind())); got != 0 {
		t.Fatalf("cancelled spawn still produced %d characters", got)
	}
}

func TestSetTeamWithAndWithoutCharacter(t *testing.T) {
	w, m := newTestManager(t)
	id := m.Join("bot", 1, "")

	// no character yet
	m.SetTeam(id, 2)
	var evt TeamChanged
	found := false
	for _, e := range w.Events().Pending() {
		if e.Type == EventTeamChanged {
			evt = e.Data.(TeamChanged)
			found = true
		}
	}
	if !found || evt.Old != 1 || evt.New != 2 {
		t.Fatalf("bad team change event: found=%v evt=%+v", found, evt)
	}
	w.Update()

	root := tickUntilSpawned(t, w, m, id)
	w.Update()

	// with character: shape recolored to the new team
	m.SetTeam(id, 1)
	shape, ok := ecs.Get(w, root, component.ShapeComponent.Kind())
	if !ok {
		t.Fatal("character lost its shape")
	}
	teamA, _ := m.def.TeamByID(1)
	if shape.Fill != teamA.Color.NRGBA() {
		t.Fatalf("shape not recolored: %v", shape.Fill)
	}
}

func TestSetTeamSameTeamIsNoop(t *testing.T) {
	w, m := newTestManager(t)
	id := m.Join("bot", 1, "")
	w.Update()

	m.SetTeam(id, 1)
	for _, e := range w.Events().Pending() {
		if e.Type == EventTeamChanged {
			t.Fatal("no-op team change emitted an event")
		}
	}
}

func TestKillSchedulesRespawn(t *testing.T) {
	w, m := newTestManager(t)
	id := m.Join("bot", 2, "")
	first := tickUntilSpawned(t, w, m, id)
	w.Update()

	m.Kill(id)
	if w.IsAlive(first) {
		t.Fatal("character survived kill")
	}

	second := tickUntilSpawned(t, w, m, id)
	if second == first {
		t.Fatal("respawn reused the dead handle")
	}
}

func TestLocalPlayerNeverLeaves(t *testing.T) {
	w, m := newTestManager(t)
	id := m.JoinLocal("me", 1)
	root := tickUntilSpawned(t, w, m, id)

	m.Leave(id)
	if _, ok := m.Get(id); !ok {
		t.Fatal("local player removed by Leave")
	}
	if !w.IsAlive(root) {
		t.Fatal("local character destroyed by Leave")
	}
	if m.Local() == nil || m.Local().ID != id {
		t.Fatal("Local() lost the local player")
	}
	if !ecs.Has[component.LocalPlayerTag](w, root, component.LocalPlayerTagComponent.Kind()) {
		t.Fatal("local character missing local tag")
	}
}

func TestPlayersJoinOrder(t *testing.T) {
	_, m := newTestManager(t)
	a := m.Join("a", 1, "")
	b := m.Join("b", 2, "")
	c := m.Join("c", 1, "")
	m.Leave(b)

	players := m.Players()
	if len(players) != 2 || players[0].ID != a || players[1].ID != c {
		t.Fatalf("unexpected order: %v", players)
	}
}
