package bots

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Self is the bot's own view for one behavior tick.
type Self struct {
	X      float64
	Y      float64
	Facing float64
	Team   int
	Rand   func() float64
}

// Arena is the world view handed to scripts.
type Arena struct {
	Width   float64
	Height  float64
	Enemies []Vec2
}

type Vec2 struct {
	X float64
	Y float64
}

// Runtime is one bot's compiled behavior script plus its persistent
// script state. Scripts define `update(self, arena, state)` and may set
// an optional global `name`; state survives between ticks.
type Runtime struct {
	script   string
	compiled *tengo.Compiled
	state    *tengo.Map
	name     string
}

const dispatchScript = `
update(__self, __arena, __state)
`

// NewRuntime loads and compiles an embedded behavior script.
func NewRuntime(script string) (*Runtime, error) {
	src, err := Load(script)
	if err != nil {
		return nil, fmt.Errorf("bots: load script %q: %w", script, err)
	}

	s := tengo.NewScript(append(src, []byte(dispatchScript)...))
	_ = s.Add("__self", map[string]any{})
	_ = s.Add("__arena", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("bots: compile %q: %w", script, err)
	}

	return &Runtime{
		script:   script,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		name:     script,
	}, nil
}

// Name returns the script's self-declared name once it has run, falling
// back to the script file name.
func (rt *Runtime) Name() string {
	if rt == nil {
		return ""
	}
	return rt.name
}

// Step runs one behavior tick and returns the desired move direction,
// normalized by the script's own convention (usually unit-length).
func (rt *Runtime) Step(self Self, world Arena) (moveX, moveY float64, err error) {
	if rt == nil || rt.compiled == nil {
		return 0, 0, fmt.Errorf("bots: nil runtime")
	}

	var outX, outY float64
	selfMap := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":      &tengo.Float{Value: self.X},
		"y":      &tengo.Float{Value: self.Y},
		"facing": &tengo.Float{Value: self.Facing},
		"team":   &tengo.Int{Value: int64(self.Team)},
		"rand": &tengo.UserFunction{Name: "rand", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if self.Rand == nil {
				return &tengo.Float{Value: 0}, nil
			}
			return &tengo.Float{Value: self.Rand()}, nil
		}},
		"move": &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 2 {
				return tengo.UndefinedValue, tengo.ErrWrongNumArguments
			}
			outX = objectAsFloat(args[0])
			outY = objectAsFloat(args[1])
			return tengo.UndefinedValue, nil
		}},
	}}

	enemies := make([]tengo.Object, 0, len(world.Enemies))
	for _, e := range world.Enemies {
		enemies = append(enemies, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"x": &tengo.Float{Value: e.X},
			"y": &tengo.Float{Value: e.Y},
		}})
	}
	arenaMap := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"width":   &tengo.Float{Value: world.Width},
		"height":  &tengo.Float{Value: world.Height},
		"enemies": &tengo.ImmutableArray{Value: enemies},
	}}

	if err := rt.compiled.Set("__self", selfMap); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Set("__arena", arenaMap); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, 0, fmt.Errorf("bots: run %q: %w", rt.script, err)
	}

	if rt.compiled.IsDefined("name") {
		if n := strings.TrimSpace(rt.compiled.Get("name").String()); n != "" {
			rt.name = strings.Trim(n, `"`)
		}
	}

	return outX, outY, nil
}

func objectAsFloat(o tengo.Object) float64 {
	switch v := o.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		return 0
	}
}
