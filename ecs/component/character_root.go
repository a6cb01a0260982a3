package component

import "github.com/google/uuid"

// CharacterRoot marks the root entity of a spawned character and carries
// the owning player's id.
type CharacterRoot struct {
	Player uuid.UUID
}

var CharacterRootComponent = NewComponent[CharacterRoot]()
