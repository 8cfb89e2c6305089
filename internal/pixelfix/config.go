// Package pixelfix runs the stuck-pixel repair frame loop: it flashes the
// whole screen through a fixed palette, or flashes a movable patch of random
// colors steered with a gamepad.
package pixelfix

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

type Mode int

const (
	// ModeCycle fills the whole screen with the next palette color.
	ModeCycle Mode = iota
	// ModePatch flashes random colors inside a movable square.
	ModePatch
)

func (m Mode) String() string {
	switch m {
	case ModeCycle:
		return "cycle"
	case ModePatch:
		return "patch"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cycle":
		return ModeCycle, nil
	case "patch":
		return ModePatch, nil
	}
	return ModeCycle, fmt.Errorf("unknown mode %q (want cycle or patch)", s)
}

const (
	CycleInterval = 50 * time.Millisecond
	PatchInterval = 16 * time.Millisecond

	PatchSize = 64
	PatchStep = 5
	DeadZone  = 8000
)

// Palette is visited in order, wrapping around, in cycle mode.
var Palette = []color.RGBA{
	{R: 0xFF, A: 0xFF},
	{G: 0xFF, A: 0xFF},
	{B: 0xFF, A: 0xFF},
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	{A: 0xFF},
}

type Config struct {
	Mode Mode
	// Interval is the minimum time between two redraws.
	Interval time.Duration

	PatchSize int
	PatchStep int
	// DeadZone is the largest axis magnitude treated as centered.
	DeadZone int

	// Hint shows HintLines for this long before flashing starts. Zero skips it.
	Hint      time.Duration
	HintLines []string
}

// DefaultConfig returns the documented timings for mode.
func DefaultConfig(mode Mode) Config {
	cfg := Config{
		Mode:      mode,
		Interval:  CycleInterval,
		PatchSize: PatchSize,
		PatchStep: PatchStep,
		DeadZone:  DeadZone,
		HintLines: Instructions(mode),
	}
	if mode == ModePatch {
		cfg.Interval = PatchInterval
	}
	return cfg
}

// Instructions are printed at start-up and shown by the hint screen.
func Instructions(mode Mode) []string {
	lines := []string{"Stuck pixel repair"}
	if mode == ModePatch {
		lines = append(lines, "Move the flashing square over the stuck pixel with the left stick")
	} else {
		lines = append(lines, "The screen cycles red, green, blue, white and black")
	}
	return append(lines, "Press Guide, Escape or Menu to exit")
}
