package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate ebiten drives Update at.
	TPS = 60
)

// Frames converts a duration in seconds to update ticks, never below 1
// for positive durations.
func Frames(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	f := int(math.Round(seconds * TPS))
	if f < 1 {
		f = 1
	}
	return f
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
