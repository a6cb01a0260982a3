package arena

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var arenaFS embed.FS

// DefaultName is the embedded arena used when no -arena flag is given.
const DefaultName = "default.yaml"

// Load reads an arena file, preferring a file on disk over the embedded
// copy so a checked-out repo can edit arenas without rebuilding. An
// empty name loads the embedded default.
func Load(name string) ([]byte, error) {
	if name == "" {
		name = DefaultName
	}
	clean := cleanArenaPath(name)
	if data, err := os.ReadFile(diskArenaPath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return arenaFS.ReadFile(clean)
}

func cleanArenaPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "arena/"); ok {
		s = after
	}
	return filepath.Base(s)
}

func diskArenaPath(clean string) string {
	return filepath.Join("arena", filepath.FromSlash(clean))
}
