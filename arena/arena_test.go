package arena

import (
	"image/color"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	def, err := LoadFile("")
	if err != nil {
		t.Fatalf("load embedded default: %v", err)
	}
	if def.Name == "" {
		t.Fatal("default arena has no name")
	}
	if len(def.Teams) < 2 {
		t.Fatalf("default arena needs at least two teams, got %d", len(def.Teams))
	}
	if len(def.Bots) == 0 {
		t.Fatal("default arena has no bots")
	}
	for _, b := range def.Bots {
		if _, ok := def.TeamByID(b.Team); !ok {
			t.Fatalf("bot %q on unknown team %d", b.Name, b.Team)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Definition {
		return &Definition{
			Width:  800,
			Height: 600,
			Teams: []Team{
				{ID: 1, Name: "a", Spawns: []Spawn{{X: 100, Y: 100}}},
				{ID: 2, Name: "b", Spawns: []Spawn{{X: 700, Y: 500}}},
			},
			Bots: []Bot{{Name: "bot", Team: 1, Script: "wander"}},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{"valid", func(d *Definition) {}, ""},
		{"zero_width", func(d *Definition) { d.Width = 0 }, "dimensions"},
		{"negative_height", func(d *Definition) { d.Height = -1 }, "dimensions"},
		{"no_teams", func(d *Definition) { d.Teams = nil }, "no teams"},
		{"reserved_team_id", func(d *Definition) { d.Teams[0].ID = TeamNone }, "reserved"},
		{"duplicate_team_id", func(d *Definition) { d.Teams[1].ID = 1 }, "duplicate"},
		{"empty_team", func(d *Definition) { d.Teams[0].Spawns = nil }, "no spawn"},
		{"spawn_out_of_bounds", func(d *Definition) { d.Teams[0].Spawns[0].X = 9000 }, "out of bounds"},
		{"bot_unknown_team", func(d *Definition) { d.Bots[0].Team = 9 }, "unknown team"},
		{"bot_empty_name", func(d *Definition) { d.Bots[0].Name = "" }, "empty name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := valid()
			tc.mutate(def)
			err := def.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateUnknownScript(t *testing.T) {
	old := KnownScripts
	KnownScripts = map[string]bool{"wander": true}
	defer func() { KnownScripts = old }()

	def := &Definition{
		Width:  100,
		Height: 100,
		Teams:  []Team{{ID: 1, Name: "a", Spawns: []Spawn{{X: 10, Y: 10}}}},
		Bots:   []Bot{{Name: "bot", Team: 1, Script: "does-not-exist"}},
	}
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown script") {
		t.Fatalf("expected unknown script error, got %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `color: "#e05038"`, color.NRGBA{R: 0xe0, G: 0x50, B: 0x38, A: 0xff}, false},
		{"rgba", `color: "#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"no_hash", `color: "3a6fd8"`, color.NRGBA{R: 0x3a, G: 0x6f, B: 0xd8, A: 0xff}, false},
		{"short", `color: "#fff"`, color.NRGBA{}, true},
		{"garbage", `color: "#zzzzzz"`, color.NRGBA{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var holder struct {
				Color *YAMLColor `yaml:"color"`
			}
			err := yaml.Unmarshal([]byte(tc.yaml), &holder)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := holder.Color.NRGBA(); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOtherTeam(t *testing.T) {
	def := &Definition{Teams: []Team{{ID: 1}, {ID: 2}}}
	if id, ok := def.OtherTeam(1); !ok || id != 2 {
		t.Fatalf("OtherTeam(1) = %d, %v", id, ok)
	}
	single := &Definition{Teams: []Team{{ID: 1}}}
	if _, ok := single.OtherTeam(1); ok {
		t.Fatal("expected no other team")
	}
}
