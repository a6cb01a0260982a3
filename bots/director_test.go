package bots

import (
	"math/rand"
	"testing"

	"sightline/arena"
	"sightline/common"
	"sightline/ecs"
	"sightline/session"
)

func churnDef(churn arena.Churn) *arena.Definition {
	return &arena.Definition{
		Name:         "churn",
		Width:        800,
		Height:       600,
		SpawnDelay:   0.02,
		RespawnDelay: 0.02,
		Teams: []arena.Team{
			{ID: 1, Name: "a", Spawns: []arena.Spawn{{X: 100, Y: 100}}},
			{ID: 2, Name: "b", Spawns: []arena.Spawn{{X: 700, Y: 500}}},
		},
		Bots: []arena.Bot{
			{Name: "one", Team: 1, Script: "wander", JoinDelay: 0.02},
			{Name: "two", Team: 2, Script: "wander", JoinDelay: 0.05},
		},
		Churn: churn,
	}
}

func newDirectorWorld(t *testing.T, churn arena.Churn) (*ecs.World, *session.Manager, *Director) {
	t.Helper()
	w := ecs.NewWorld()
	def := churnDef(churn)
	m := session.NewManager(w, def, rand.New(rand.NewSource(3)))
	d := NewDirector(m, def, rand.New(rand.NewSource(4)))
	w.AddSystem(d)
	w.AddSystem(m)
	return w, m, d
}

func remoteCount(m *session.Manager) int {
	n := 0
	for _, p := range m.Players() {
		if !p.Local {
			n++
		}
	}
	return n
}

func TestRosterJoinsOnSchedule(t *testing.T) {
	w, m, _ := newDirectorWorld(t, arena.Churn{})
	m.JoinLocal("me", 1)

	if remoteCount(m) != 0 {
		t.Fatal("bots joined before their delay")
	}
	for i := 0; i < common.TPS; i++ {
		w.Update()
	}
	if got := remoteCount(m); got != 2 {
		t.Fatalf("expected 2 roster bots after a second, got %d", got)
	}
}

func TestLeaveAndRejoinCycle(t *testing.T) {
	w, m, _ := newDirectorWorld(t, arena.Churn{LeaveInterval: 0.1, RejoinDelay: 0.1})
	m.JoinLocal("me", 1)

	sawDrop := false
	for i := 0; i < 30*common.TPS; i++ {
		w.Update()
		if remoteCount(m) < 2 {
			sawDrop = true
		}
		if sawDrop && remoteCount(m) == 2 {
			return // a bot left and came back
		}
	}
	t.Fatalf("no leave/rejoin cycle observed (sawDrop=%v, remotes=%d)", sawDrop, remoteCount(m))
}

func TestSwapChangesTeams(t *testing.T) {
	w, m, _ := newDirectorWorld(t, arena.Churn{SwapInterval: 0.1})
	m.JoinLocal("me", 1)

	initial := map[string]arena.TeamID{}
	for i := 0; i < 5*common.TPS; i++ {
		w.Update()
		for _, p := range m.Players() {
			if p.Local {
				continue
			}
			if old, ok := initial[p.Name]; !ok {
				initial[p.Name] = p.Team
			} else if old != p.Team {
				return // observed a swap
			}
		}
	}
	t.Fatal("no team swap observed")
}

func TestKillRespawnsCharacter(t *testing.T) {
	w, m, _ := newDirectorWorld(t, arena.Churn{KillInterval: 0.1})
	m.JoinLocal("me", 1)

	spawned := func(name string) ecs.Entity {
		for _, p := range m.Players() {
			if p.Name == name {
				return p.Character
			}
		}
		return 0
	}

	// wait for the first roster bot to spawn
	var first ecs.Entity
	for i := 0; i < 2*common.TPS; i++ {
		w.Update()
		if first = spawned("one"); first.Valid() {
			break
		}
	}
	if !first.Valid() {
		t.Fatal("bot never spawned")
	}

	// a kill churns the character entity eventually
	for i := 0; i < 30*common.TPS; i++ {
		w.Update()
		if cur := spawned("one"); cur.Valid() && cur != first {
			return
		}
	}
	t.Fatal("kill churn never replaced the character entity")
}

func TestZeroIntervalsDisableChurn(t *testing.T) {
	w, m, _ := newDirectorWorld(t, arena.Churn{})
	m.JoinLocal("me", 1)

	for i := 0; i < 5*common.TPS; i++ {
		w.Update()
	}
	if got := remoteCount(m); got != 2 {
		t.Fatalf("churn disabled but roster changed: %d remotes", got)
	}
}
