package main

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rook-computer/pixelfix/internal/input"
	"golang.org/x/image/bmp"
)

const fullTilt = math.MaxInt16

var stickDirections = map[string][2]int16{
	"idle":       {0, 0},
	"left":       {-fullTilt, 0},
	"right":      {fullTilt, 0},
	"up":         {0, -fullTilt},
	"down":       {0, fullTilt},
	"up-left":    {-fullTilt, -fullTilt},
	"up-right":   {fullTilt, -fullTilt},
	"down-left":  {-fullTilt, fullTilt},
	"down-right": {fullTilt, fullTilt},
}

var discreteEvents = map[string]input.Event{
	"guide": {Kind: input.EventButtonDown, Button: input.GuideButton},
	"esc":   {Kind: input.EventKeyDown, Key: input.KeyEscape},
	"menu":  {Kind: input.EventKeyDown, Key: input.KeyMenu},
	"quit":  {Kind: input.EventQuit},
}

// parseScript expands a script such as "right*20,down*5,guide" into one
// gamepad step per loop iteration.
func parseScript(script string) ([]input.ScriptStep, error) {
	var steps []input.ScriptStep
	for _, token := range strings.Split(script, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		name, count := token, 1
		if i := strings.LastIndexByte(token, '*'); i >= 0 {
			n, err := strconv.Atoi(token[i+1:])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("bad repeat count in %q", token)
			}
			name, count = token[:i], n
		}
		step, err := parseStep(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

func parseStep(name string) (input.ScriptStep, error) {
	if axes, ok := stickDirections[name]; ok {
		return input.ScriptStep{Axes: axes}, nil
	}
	if ev, ok := discreteEvents[name]; ok {
		return input.ScriptStep{Events: []input.Event{ev}}, nil
	}
	if rest, ok := strings.CutPrefix(name, "button:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return input.ScriptStep{}, fmt.Errorf("bad button in %q", name)
		}
		return input.ScriptStep{Events: []input.Event{{Kind: input.EventButtonDown, Button: n}}}, nil
	}
	return input.ScriptStep{}, fmt.Errorf("unknown script step %q", name)
}

func writeFrame(path string, frame image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(f, frame)
	case ".png":
		err = png.Encode(f, frame)
	default:
		err = fmt.Errorf("unsupported frame format %q (want .png or .bmp)", filepath.Ext(path))
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
