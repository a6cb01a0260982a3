package session

import (
	"github.com/google/uuid"

	"sightline/arena"
	"sightline/ecs"
)

// Event type tags used on the world event queue. Payloads are the
// structs below.
const (
	EventPlayerJoined       = "player_joined"
	EventPlayerLeft         = "player_left"
	EventTeamChanged        = "team_changed"
	EventCharacterSpawned   = "character_spawned"
	EventCharacterDespawned = "character_despawned"
)

type PlayerJoined struct {
	Player uuid.UUID
}

type PlayerLeft struct {
	Player uuid.UUID
}

type TeamChanged struct {
	Player uuid.UUID
	Old    arena.TeamID
	New    arena.TeamID
}

type CharacterSpawned struct {
	Player uuid.UUID
	Root   ecs.Entity
}

type CharacterDespawned struct {
	Player uuid.UUID
	Root   ecs.Entity
}
