// Command simulator runs the frame loop headlessly against an in-memory
// surface, driven by a scripted gamepad, and saves the last frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rook-computer/pixelfix/internal/app"
	"github.com/rook-computer/pixelfix/internal/fbinfo"
	"github.com/rook-computer/pixelfix/internal/input"
	"github.com/rook-computer/pixelfix/internal/pixelfix"
	"github.com/rook-computer/pixelfix/internal/render"
)

func main() {
	modeName := flag.String("mode", "cycle", "cycle | patch")
	width := flag.Int("width", fbinfo.Default.Width, "simulated screen width")
	height := flag.Int("height", fbinfo.Default.Height, "simulated screen height")
	script := flag.String("script", "idle*10", "comma separated steps: idle, left, right, up, down, up-left, up-right, down-left, down-right, guide, esc, menu, quit, button:N; append *N to repeat")
	step := flag.Duration("step", time.Millisecond, "simulated time between two loop iterations")
	hint := flag.Duration("hint", 0, "show the hint screen for this long")
	seed := flag.Uint64("seed", 1, "random seed for patch colors")
	out := flag.String("out", "", "write the last presented frame here (.png or .bmp)")
	verbose := flag.Bool("v", false, "log loop activity to stderr")
	flag.Parse()

	mode, err := pixelfix.ParseMode(*modeName)
	if err != nil {
		fmt.Println("mode error:", err)
		os.Exit(2)
	}
	steps, err := parseScript(*script)
	if err != nil {
		fmt.Println("script error:", err)
		os.Exit(2)
	}
	// Always end the run once the script is exhausted.
	steps = append(steps, input.ScriptStep{Events: []input.Event{{Kind: input.EventQuit}}})

	surface := render.NewImageSurface(*width, *height)
	pad := &input.ScriptedGamepad{Steps: steps}

	cfg := pixelfix.DefaultConfig(mode)
	cfg.Hint = *hint
	loop := pixelfix.NewLoop(cfg, surface, pad, pad)
	loop.Clock = &pixelfix.StepClock{T: time.Unix(0, 0), Step: *step}
	loop.Rand = rand.New(rand.NewPCG(*seed, *seed))
	loop.Stdout = os.Stdout
	if *verbose {
		loop.Logger = app.NewFileLogger(os.Stderr)
	}

	if err := loop.Run(context.Background()); err != nil {
		fmt.Println("loop error:", err)
		os.Exit(1)
	}

	p := loop.Patch()
	fmt.Printf("mode=%s steps=%d redraws=%d presents=%d color-index=%d patch=%d,%d\n",
		mode, pad.Polls(), loop.Redraws(), surface.Presents, loop.ColorIndex(), p.X, p.Y)

	if *out != "" {
		if err := writeFrame(*out, surface.Canvas); err != nil {
			fmt.Println("write frame error:", err)
			os.Exit(1)
		}
		fmt.Println("frame written to", *out)
	}
}
