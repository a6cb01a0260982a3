package bots

import (
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"sightline/arena"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Load returns the source of an embedded behavior script by bare name
// ("wander") or path ("scripts/wander.tengo").
func Load(name string) ([]byte, error) {
	return scriptsFS.ReadFile(cleanScriptPath(name))
}

// Names lists the embedded script names, sorted.
func Names() []string {
	entries, err := scriptsFS.ReadDir("scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	sort.Strings(names)
	return names
}

func init() {
	// Arena validation rejects bot rosters that reference scripts we
	// don't ship.
	for _, n := range Names() {
		arena.KnownScripts[n] = true
	}
}

func cleanScriptPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "bots/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return fmt.Sprintf("scripts/%s", s)
}
