package arena

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TeamID identifies a team inside one arena. TeamNone is a real value:
// two teamless players count as teammates.
type TeamID int

const TeamNone TeamID = 0

// Definition is a full arena description: geometry, teams, the bot
// roster, and the churn tuning that drives player life-cycle traffic.
type Definition struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	MoveSpeed       float64 `yaml:"move_speed"`
	CharacterRadius float64 `yaml:"character_radius"`
	SpawnDelay      float64 `yaml:"spawn_delay"`   // seconds from join to character spawn
	RespawnDelay    float64 `yaml:"respawn_delay"` // seconds from kill to respawn

	Walls []Wall `yaml:"walls"`
	Teams []Team `yaml:"teams"`
	Bots  []Bot  `yaml:"bots"`
	Churn Churn  `yaml:"churn"`
}

type Wall struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

type Team struct {
	ID     TeamID     `yaml:"id"`
	Name   string     `yaml:"name"`
	Color  *YAMLColor `yaml:"color"`
	Spawns []Spawn    `yaml:"spawns"`
}

type Spawn struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Bot struct {
	Name      string  `yaml:"name"`
	Team      TeamID  `yaml:"team"`
	Script    string  `yaml:"script"`
	JoinDelay float64 `yaml:"join_delay"` // seconds after startup
}

// Churn tunes the life-cycle traffic the director generates. A zero
// interval disables that kind of churn.
type Churn struct {
	LeaveInterval float64 `yaml:"leave_interval"` // seconds between random leaves
	RejoinDelay   float64 `yaml:"rejoin_delay"`   // seconds a left bot stays gone
	SwapInterval  float64 `yaml:"swap_interval"`  // seconds between random team swaps
	KillInterval  float64 `yaml:"kill_interval"`  // seconds between random kills
}

// Parse unmarshals an arena definition without validating it.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("arena: unmarshal: %w", err)
	}
	return &def, nil
}

// LoadFile reads, parses and validates an arena definition. An empty
// path loads the embedded default.
func LoadFile(path string) (*Definition, error) {
	data, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("arena: load %q: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("arena: %q: %w", path, err)
	}
	return def, nil
}

// KnownScripts lists the script names Validate accepts. Set once at
// startup by the bots package.
var KnownScripts = map[string]bool{}

// Validate rejects definitions the game cannot build a world from.
func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("nil definition")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("non-positive dimensions %gx%g", d.Width, d.Height)
	}
	if len(d.Teams) == 0 {
		return fmt.Errorf("no teams")
	}
	seen := map[TeamID]bool{}
	for _, t := range d.Teams {
		if t.ID == TeamNone {
			return fmt.Errorf("team %q uses reserved id %d", t.Name, TeamNone)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate team id %d", t.ID)
		}
		seen[t.ID] = true
		if len(t.Spawns) == 0 {
			return fmt.Errorf("team %q has no spawn points", t.Name)
		}
		for _, s := range t.Spawns {
			if s.X < 0 || s.X > d.Width || s.Y < 0 || s.Y > d.Height {
				return fmt.Errorf("team %q spawn (%g, %g) out of bounds", t.Name, s.X, s.Y)
			}
		}
	}
	for _, b := range d.Bots {
		if b.Name == "" {
			return fmt.Errorf("bot with empty name")
		}
		if !seen[b.Team] {
			return fmt.Errorf("bot %q references unknown team %d", b.Name, b.Team)
		}
		if len(KnownScripts) > 0 && !KnownScripts[b.Script] {
			return fmt.Errorf("bot %q references unknown script %q", b.Name, b.Script)
		}
	}
	return nil
}

// TeamByID returns the team definition, or false for TeamNone and
// unknown ids.
func (d *Definition) TeamByID(id TeamID) (Team, bool) {
	if d == nil {
		return Team{}, false
	}
	for _, t := range d.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// OtherTeam picks some team other than the given one, for team swaps.
func (d *Definition) OtherTeam(id TeamID) (TeamID, bool) {
	if d == nil {
		return TeamNone, false
	}
	for _, t := range d.Teams {
		if t.ID != id {
			return t.ID, true
		}
	}
	return TeamNone, false
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// NRGBA returns the parsed color, defaulting to opaque white when the
// definition omitted it.
func (c *YAMLColor) NRGBA() color.NRGBA {
	if c == nil || c.Color == nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b, a := c.Color.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
