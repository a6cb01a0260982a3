// Package overlay holds the runtime-tunable settings for the facing-beam
// overlay. Settings live only in memory; the panel mutates them and the
// beam systems re-read them every frame.
package overlay

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

const (
	MinEmission  = 0.0
	MaxEmission  = 1.0
	MinLength    = 0.5
	MaxLength    = 200.0
	MinThickness = 0.05
	MaxThickness = 10.0
	MinOffset    = -5.0
	MaxOffset    = 5.0
)

// Settings is the full overlay configuration. All fields are clamped to
// their documented ranges by the Set* helpers.
type Settings struct {
	R, G, B        int
	Emission       float64
	Length         float64
	Thickness      float64
	VerticalOffset float64
	Enabled        bool
}

// Defaults returns the built-in settings: a red beam at near-full
// brightness, 60 world units long.
func Defaults() Settings {
	return Settings{
		R:              255,
		G:              0,
		B:              0,
		Emission:       0.85,
		Length:         60,
		Thickness:      2,
		VerticalOffset: 0,
		Enabled:        true,
	}
}

// Color returns the configured beam color at full alpha; the render pass
// scales alpha by Emission.
func (s Settings) Color() color.NRGBA {
	return color.NRGBA{R: uint8(s.R), G: uint8(s.G), B: uint8(s.B), A: 255}
}

// Encode renders the settings one key=value per line, sorted by key.
// This is the clipboard format of the panel's Copy button.
func (s Settings) Encode() string {
	kv := map[string]string{
		"r":         strconv.Itoa(s.R),
		"g":         strconv.Itoa(s.G),
		"b":         strconv.Itoa(s.B),
		"emission":  strconv.FormatFloat(s.Emission, 'g', -1, 64),
		"length":    strconv.FormatFloat(s.Length, 'g', -1, 64),
		"thickness": strconv.FormatFloat(s.Thickness, 'g', -1, 64),
		"offset":    strconv.FormatFloat(s.VerticalOffset, 'g', -1, 64),
		"enabled":   strconv.FormatBool(s.Enabled),
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, kv[k])
	}
	return b.String()
}

// ClampChannel clamps a color channel into [0, 255].
func ClampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ClampFloat clamps v into [min, max].
func ClampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ParseChannel parses a color channel text field. Empty or unparsable
// input keeps prev; parsable input is clamped into [0, 255].
func ParseChannel(text string, prev int) int {
	t := strings.TrimSpace(text)
	if t == "" {
		return prev
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		return prev
	}
	return ClampChannel(v)
}

// ParseFloat parses a numeric text field. Empty or unparsable input
// keeps prev; parsable input is clamped into [min, max].
func ParseFloat(text string, prev, min, max float64) float64 {
	t := strings.TrimSpace(text)
	if t == "" {
		return prev
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return prev
	}
	return ClampFloat(v, min, max)
}
