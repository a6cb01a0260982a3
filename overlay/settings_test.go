package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChannel(t *testing.T) {
	cases := []struct {
		name string
		text string
		prev int
		want int
	}{
		{"plain", "128", 0, 128},
		{"empty_keeps_prev", "", 77, 77},
		{"whitespace_keeps_prev", "   ", 77, 77},
		{"garbage_keeps_prev", "red", 77, 77},
		{"trailing_junk_keeps_prev", "12x", 77, 77},
		{"clamp_high", "400", 0, 255},
		{"clamp_low", "-3", 200, 0},
		{"trimmed", " 42 ", 0, 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseChannel(tc.text, tc.prev))
		})
	}
}

func TestParseFloat(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		prev     float64
		min, max float64
		want     float64
	}{
		{"plain", "1.5", 0, MinThickness, MaxThickness, 1.5},
		{"empty_keeps_prev", "", 3.2, MinThickness, MaxThickness, 3.2},
		{"garbage_keeps_prev", "wide", 3.2, MinThickness, MaxThickness, 3.2},
		{"clamp_high", "999", 0, MinLength, MaxLength, MaxLength},
		{"clamp_low", "0.001", 5, MinLength, MaxLength, MinLength},
		{"negative_offset_ok", "-2.5", 0, MinOffset, MaxOffset, -2.5},
		{"offset_clamp_low", "-50", 0, MinOffset, MaxOffset, MinOffset},
		{"emission_clamp", "1.2", 0.5, MinEmission, MaxEmission, MaxEmission},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ParseFloat(tc.text, tc.prev, tc.min, tc.max), 1e-9)
		})
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.True(t, d.Enabled)
	assert.Equal(t, 255, d.R)
	assert.Equal(t, 0, d.G)
	assert.Equal(t, 0, d.B)
	assert.InDelta(t, 0.85, d.Emission, 1e-9)
	assert.InDelta(t, 60.0, d.Length, 1e-9)
	assert.InDelta(t, 2.0, d.Thickness, 1e-9)
	assert.InDelta(t, 0.0, d.VerticalOffset, 1e-9)
}

func TestEncode(t *testing.T) {
	s := Defaults()
	s.G = 128
	out := s.Encode()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, lines, "r=255")
	assert.Contains(t, lines, "g=128")
	assert.Contains(t, lines, "enabled=true")
	// sorted output is stable across calls
	assert.Equal(t, out, s.Encode())
}
