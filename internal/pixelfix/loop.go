package pixelfix

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math/rand/v2"
	"time"

	"github.com/rook-computer/pixelfix/internal/input"
	"github.com/rook-computer/pixelfix/internal/render"
)

// RunState is the frame loop state. Terminating is terminal.
type RunState int

const (
	Running RunState = iota
	Terminating
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "terminating"
}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Loop owns all per-run state. It is single-threaded: Run polls input,
// updates state and redraws on the calling goroutine until an exit request.
type Loop struct {
	Config  Config
	Surface render.Surface
	Input   input.Source
	// Pad supplies analog axes in patch mode. It may be nil in cycle mode.
	Pad    input.Gamepad
	Clock  Clock
	Rand   *rand.Rand
	Stdout io.Writer
	Logger logger
	// Text renders the hint screen; created on demand when nil.
	Text *render.TextRenderer

	state      RunState
	started    bool
	colorIndex int
	patch      Patch
	lastRedraw time.Time
	hintUntil  time.Time
	hintDrawn  bool
	// shown is the patch rectangle currently on screen; empty until the
	// first patch frame has cleared the surface.
	shown   image.Rectangle
	redraws int
}

func NewLoop(cfg Config, surface render.Surface, src input.Source, pad input.Gamepad) *Loop {
	return &Loop{
		Config:  cfg,
		Surface: surface,
		Input:   src,
		Pad:     pad,
		Clock:   SystemClock,
		Stdout:  io.Discard,
	}
}

func (l *Loop) State() RunState { return l.state }

// ColorIndex is the palette entry the next cycle redraw will use.
func (l *Loop) ColorIndex() int { return l.colorIndex }

func (l *Loop) Patch() Patch { return l.patch }

// Redraws counts mode redraws; the hint screen is not included.
func (l *Loop) Redraws() int { return l.redraws }

// Run iterates until an exit request or ctx is done. Cancellation counts as a
// quit request, so Run only returns an error when presenting a frame fails.
func (l *Loop) Run(ctx context.Context) error {
	for l.state == Running {
		if ctx.Err() != nil {
			l.terminate("context done")
			break
		}
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) start(now time.Time) {
	if l.Clock == nil {
		l.Clock = SystemClock
	}
	if l.Rand == nil {
		l.Rand = rand.New(rand.NewPCG(uint64(now.UnixNano()), 0x9e3779b97f4a7c15))
	}
	if l.Stdout == nil {
		l.Stdout = io.Discard
	}
	width, height := l.Surface.Size()
	l.patch = CenteredPatch(l.Config.PatchSize, width, height)
	l.lastRedraw = now
	l.hintUntil = now.Add(l.Config.Hint)
	l.started = true
	if l.Logger != nil {
		l.Logger.Infof("loop", "start mode=%s interval=%s surface=%dx%d", l.Config.Mode, l.Config.Interval, width, height)
	}
}

// Step runs a single loop iteration.
func (l *Loop) Step() error {
	if l.state != Running {
		return nil
	}
	if !l.started {
		clock := l.Clock
		if clock == nil {
			clock = SystemClock
		}
		l.start(clock.Now())
	}

	if l.Input != nil {
		for _, ev := range l.Input.Poll() {
			l.handle(ev)
		}
	}
	if l.state != Running {
		return nil
	}

	now := l.Clock.Now()
	if now.Before(l.hintUntil) {
		return l.drawHint(now)
	}

	if l.Config.Mode == ModePatch && l.Pad != nil {
		width, height := l.Surface.Size()
		l.patch = MovePatch(l.patch, l.Pad.Axis(input.AxisHorizontal), l.Pad.Axis(input.AxisVertical), l.Config, width, height)
	}

	if now.Sub(l.lastRedraw) < l.Config.Interval {
		return nil
	}
	if err := l.redraw(); err != nil {
		return err
	}
	l.lastRedraw = now
	return nil
}

// handle applies the exit rule to one event. Other events are ignored.
func (l *Loop) handle(ev input.Event) {
	switch ev.Kind {
	case input.EventQuit:
		l.terminate("quit requested")
	case input.EventKeyDown:
		if ev.Key == input.KeyEscape || ev.Key == input.KeyMenu {
			l.terminate(ev.String())
		}
	case input.EventButtonDown:
		if ev.Button == input.GuideButton {
			fmt.Fprintln(l.Stdout, "guide button pressed, exiting")
			l.terminate(ev.String())
		}
	}
}

func (l *Loop) terminate(reason string) {
	if l.state == Terminating {
		return
	}
	l.state = Terminating
	if l.Logger != nil {
		l.Logger.Infof("loop", "terminating: %s after %d redraws", reason, l.redraws)
	}
}

func (l *Loop) redraw() error {
	switch l.Config.Mode {
	case ModePatch:
		l.drawPatch()
		if err := l.Surface.Present(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
	default:
		if err := render.ClearToColor(l.Surface, Palette[l.colorIndex]); err != nil {
			return fmt.Errorf("present: %w", err)
		}
		l.colorIndex = (l.colorIndex + 1) % len(Palette)
	}
	l.redraws++
	return nil
}

// drawPatch clears the whole surface only for the first patch frame. Later
// frames repaint the area the patch left and the patch itself.
func (l *Loop) drawPatch() {
	size := l.Config.PatchSize
	rect := image.Rect(l.patch.X, l.patch.Y, l.patch.X+size, l.patch.Y+size)
	switch {
	case l.shown.Empty():
		l.Surface.Fill(render.Background)
	case l.shown != rect:
		l.Surface.FillRect(l.shown, render.Background)
	}
	l.shown = rect
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			l.Surface.DrawPoint(l.patch.X+x, l.patch.Y+y, randomColor(l.Rand))
		}
	}
}

func randomColor(r *rand.Rand) color.RGBA {
	v := r.Uint32()
	return color.RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: 0xFF}
}

// drawHint shows the instructions once; the hint stays on screen until it
// expires.
func (l *Loop) drawHint(now time.Time) error {
	if l.hintDrawn {
		return nil
	}
	l.hintDrawn = true
	l.shown = image.Rectangle{}
	width, height := l.Surface.Size()
	if l.Text == nil {
		l.Text = render.NewTextRenderer(height, l.Logger)
	}
	img := l.Text.Render(l.Config.HintLines, width, height, render.Foreground, render.Background)
	l.Surface.Fill(render.Background)
	l.Surface.DrawImage(img, image.Point{})
	if err := l.Surface.Present(); err != nil {
		return fmt.Errorf("present hint: %w", err)
	}
	l.lastRedraw = now
	return nil
}
