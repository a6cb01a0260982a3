package component

// TTL destroys the entity after the given number of update ticks.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
