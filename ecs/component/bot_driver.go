package component

// BotDriver makes a character's intent come from an embedded script. A
// driver that errored is marked Failed and never runs again.
type BotDriver struct {
	Script string

	TickEvery int
	Tick      int
	Failed    bool
}

var BotDriverComponent = NewComponent[BotDriver]()
