package pixelfix

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rook-computer/pixelfix/internal/input"
	"github.com/rook-computer/pixelfix/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct{ t time.Time }

func newManualClock() *manualClock { return &manualClock{t: time.Unix(1700000000, 0)} }

func (c *manualClock) Now() time.Time { return c.t }

func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func (c *manualClock) since(start time.Time) time.Duration { return c.t.Sub(start) }

// queue is an input source fed by the test between steps.
type queue struct {
	pending []input.Event
	axes    [2]int16
	closed  bool
}

func (q *queue) Push(evs ...input.Event) { q.pending = append(q.pending, evs...) }
func (q *queue) Poll() []input.Event {
	out := q.pending
	q.pending = nil
	return out
}
func (q *queue) Axis(axis int) int16 { return q.axes[axis] }
func (q *queue) Name() string        { return "queue" }
func (q *queue) Close() error        { q.closed = true; return nil }

func newTestLoop(mode Mode, width, height int) (*Loop, *render.ImageSurface, *queue, *manualClock) {
	surface := render.NewImageSurface(width, height)
	q := &queue{}
	clock := newManualClock()
	l := NewLoop(DefaultConfig(mode), surface, q, q)
	l.Clock = clock
	l.Rand = rand.New(rand.NewPCG(1, 2))
	return l, surface, q, clock
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeCycle, "cycle": ModeCycle, " Patch ": ModePatch} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("strobe")
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, DefaultConfig(ModeCycle).Interval)
	patch := DefaultConfig(ModePatch)
	assert.Equal(t, 16*time.Millisecond, patch.Interval)
	assert.Equal(t, 64, patch.PatchSize)
	assert.Equal(t, 5, patch.PatchStep)
	assert.Equal(t, 8000, patch.DeadZone)
	assert.Zero(t, patch.Hint)
}

func TestPaletteCyclesInOrder(t *testing.T) {
	l, surface, _, clock := newTestLoop(ModeCycle, 4, 4)
	var seen []color.RGBA
	surface.OnPresent = func(frame *image.RGBA) { seen = append(seen, frame.RGBAAt(0, 0)) }
	require.NoError(t, l.Step())
	assert.Zero(t, l.Redraws())

	for n := 1; n <= 12; n++ {
		clock.Advance(CycleInterval)
		require.NoError(t, l.Step())
		assert.Equal(t, n, l.Redraws())
		assert.Equal(t, n%5, l.ColorIndex())
	}
	want := []color.RGBA{}
	for i := 0; i < 12; i++ {
		want = append(want, Palette[i%5])
	}
	assert.Equal(t, want, seen)
	assert.Equal(t, []color.RGBA{
		{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255}, {R: 255, G: 255, B: 255, A: 255}, {A: 255},
	}, seen[:5])
}

func TestRedrawThrottling(t *testing.T) {
	for _, mode := range []Mode{ModeCycle, ModePatch} {
		l, surface, _, clock := newTestLoop(mode, 80, 80)
		interval := l.Config.Interval
		var presents []time.Time
		surface.OnPresent = func(*image.RGBA) { presents = append(presents, clock.Now()) }

		start := clock.Now()
		for clock.since(start) < time.Second {
			require.NoError(t, l.Step())
			clock.Advance(3 * time.Millisecond)
		}
		require.NotEmpty(t, presents, mode.String())
		assert.GreaterOrEqual(t, presents[0].Sub(start), interval)
		for i := 1; i < len(presents); i++ {
			assert.GreaterOrEqual(t, presents[i].Sub(presents[i-1]), interval, "%s redraw %d", mode, i)
		}
		assert.Equal(t, len(presents), l.Redraws())
	}
}

func TestNoRedrawBeforeInterval(t *testing.T) {
	l, surface, _, clock := newTestLoop(ModeCycle, 4, 4)
	require.NoError(t, l.Step())
	clock.Advance(CycleInterval - time.Millisecond)
	require.NoError(t, l.Step())
	assert.Zero(t, surface.Presents)
	clock.Advance(time.Millisecond)
	require.NoError(t, l.Step())
	assert.Equal(t, 1, surface.Presents)
}

func TestExitEventsTerminateWithinOnePoll(t *testing.T) {
	noise := []input.Event{
		{Kind: input.EventButtonDown, Button: 0},
		{Kind: input.EventKeyDown, Key: input.KeyOther},
	}
	exits := []input.Event{
		{Kind: input.EventQuit},
		{Kind: input.EventKeyDown, Key: input.KeyEscape},
		{Kind: input.EventKeyDown, Key: input.KeyMenu},
		{Kind: input.EventButtonDown, Button: input.GuideButton},
	}
	for _, exit := range exits {
		for pos := 0; pos <= len(noise); pos++ {
			l, surface, q, clock := newTestLoop(ModeCycle, 4, 4)
			var stdout bytes.Buffer
			l.Stdout = &stdout
			evs := append([]input.Event{}, noise[:pos]...)
			evs = append(evs, exit)
			evs = append(evs, noise[pos:]...)
			q.Push(evs...)
			clock.Advance(time.Second)

			require.NoError(t, l.Step())
			assert.Equal(t, Terminating, l.State(), "%s at %d", exit, pos)
			assert.Zero(t, surface.Presents, "no redraw after exit")
			assert.Empty(t, q.pending)
			if exit.Kind == input.EventButtonDown {
				assert.Equal(t, "guide button pressed, exiting\n", stdout.String())
			}
		}
	}
}

func TestNonExitEventsKeepRunning(t *testing.T) {
	l, _, q, _ := newTestLoop(ModeCycle, 4, 4)
	for b := 0; b < 16; b++ {
		if b != input.GuideButton {
			q.Push(input.Event{Kind: input.EventButtonDown, Button: b})
		}
	}
	q.Push(input.Event{Kind: input.EventKeyDown, Key: input.KeyOther})
	require.NoError(t, l.Step())
	assert.Equal(t, Running, l.State())
}

func TestTerminatingIsTerminal(t *testing.T) {
	l, surface, q, clock := newTestLoop(ModeCycle, 4, 4)
	q.Push(input.Event{Kind: input.EventQuit})
	require.NoError(t, l.Step())
	clock.Advance(time.Second)
	require.NoError(t, l.Step())
	assert.Equal(t, Terminating, l.State())
	assert.Zero(t, surface.Presents)
}

func TestRunStopsOnExitEvent(t *testing.T) {
	l, _, _, _ := newTestLoop(ModeCycle, 4, 4)
	l.Clock = &StepClock{T: time.Unix(0, 0), Step: 10 * time.Millisecond}
	pad := &input.ScriptedGamepad{Steps: make([]input.ScriptStep, 40)}
	pad.Steps[39].Events = []input.Event{{Kind: input.EventButtonDown, Button: input.GuideButton}}
	l.Input, l.Pad = pad, pad

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, Terminating, l.State())
	assert.Equal(t, 40, pad.Polls())
	assert.Positive(t, l.Redraws())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	l, _, _, _ := newTestLoop(ModeCycle, 4, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, l.Run(ctx))
	assert.Equal(t, Terminating, l.State())
}

type failingSurface struct{ *render.ImageSurface }

func (failingSurface) Present() error { return errors.New("device gone") }

func TestRunReturnsPresentError(t *testing.T) {
	l, _, _, _ := newTestLoop(ModeCycle, 4, 4)
	l.Surface = failingSurface{render.NewImageSurface(4, 4)}
	l.Clock = &StepClock{T: time.Unix(0, 0), Step: time.Second}
	err := l.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
}

func TestPatchRedrawOnlyLightsPatch(t *testing.T) {
	l, surface, _, clock := newTestLoop(ModePatch, 200, 100)
	require.NoError(t, l.Step())
	clock.Advance(PatchInterval)
	require.NoError(t, l.Step())
	require.Equal(t, 1, surface.Presents)

	p := l.Patch()
	assert.Equal(t, Patch{X: 68, Y: 18}, p)
	patchRect := image.Rect(p.X, p.Y, p.X+PatchSize, p.Y+PatchSize)
	lit, distinct := 0, map[color.RGBA]bool{}
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			c := surface.Canvas.RGBAAt(x, y)
			if !image.Pt(x, y).In(patchRect) {
				require.Equal(t, render.Background, c, "pixel %d,%d outside patch", x, y)
				continue
			}
			distinct[c] = true
			if c != render.Background {
				lit++
			}
		}
	}
	assert.Greater(t, lit, PatchSize*PatchSize*9/10)
	assert.Greater(t, len(distinct), 1000)
}

func TestPatchFollowsAxes(t *testing.T) {
	l, _, q, clock := newTestLoop(ModePatch, 640, 480)
	require.NoError(t, l.Step())
	start := l.Patch()

	q.axes = [2]int16{20000, -20000}
	clock.Advance(time.Millisecond)
	require.NoError(t, l.Step())
	assert.Equal(t, Patch{X: start.X + 5, Y: start.Y - 5}, l.Patch())

	q.axes = [2]int16{8000, -8000}
	require.NoError(t, l.Step())
	assert.Equal(t, Patch{X: start.X + 5, Y: start.Y - 5}, l.Patch())

	q.axes = [2]int16{32767, 32767}
	for i := 0; i < 1000; i++ {
		require.NoError(t, l.Step())
	}
	assert.Equal(t, Patch{X: 640 - 64, Y: 480 - 64}, l.Patch())
}

func TestCycleModeIgnoresAxes(t *testing.T) {
	l, _, q, _ := newTestLoop(ModeCycle, 640, 480)
	q.axes = [2]int16{32767, 32767}
	require.NoError(t, l.Step())
	start := l.Patch()
	require.NoError(t, l.Step())
	assert.Equal(t, start, l.Patch())
}

func TestHintShownBeforeFlashing(t *testing.T) {
	l, surface, q, clock := newTestLoop(ModeCycle, 320, 240)
	l.Config.Hint = 200 * time.Millisecond

	require.NoError(t, l.Step())
	assert.Equal(t, 1, surface.Presents, "hint presented")
	for i := 0; i < 5; i++ {
		clock.Advance(30 * time.Millisecond)
		require.NoError(t, l.Step())
	}
	assert.Equal(t, 1, surface.Presents, "hint is drawn once")
	assert.Zero(t, l.Redraws())

	clock.Advance(100 * time.Millisecond)
	require.NoError(t, l.Step())
	assert.Equal(t, 1, l.Redraws())
	assert.Equal(t, Palette[0], surface.Canvas.RGBAAt(0, 0))

	q.Push(input.Event{Kind: input.EventKeyDown, Key: input.KeyEscape})
	require.NoError(t, l.Step())
	assert.Equal(t, Terminating, l.State())
}

func TestExitDuringHint(t *testing.T) {
	l, _, q, _ := newTestLoop(ModePatch, 320, 240)
	l.Config.Hint = time.Minute
	require.NoError(t, l.Step())
	q.Push(input.Event{Kind: input.EventButtonDown, Button: input.GuideButton})
	require.NoError(t, l.Step())
	assert.Equal(t, Terminating, l.State())
}

type fillCountingSurface struct {
	*render.ImageSurface
	fills     int
	fillRects []image.Rectangle
}

func (s *fillCountingSurface) Fill(c color.RGBA) {
	s.fills++
	s.ImageSurface.Fill(c)
}

func (s *fillCountingSurface) FillRect(r image.Rectangle, c color.RGBA) {
	s.fillRects = append(s.fillRects, r)
	s.ImageSurface.FillRect(r, c)
}

func TestPatchFramesRepaintOnlyVacatedArea(t *testing.T) {
	l, _, q, clock := newTestLoop(ModePatch, 200, 100)
	surface := &fillCountingSurface{ImageSurface: render.NewImageSurface(200, 100)}
	l.Surface = surface

	require.NoError(t, l.Step())
	clock.Advance(PatchInterval)
	require.NoError(t, l.Step())
	require.Equal(t, 1, surface.fills, "first patch frame clears the screen")
	first := l.Patch()

	// Stationary patch: nothing outside it needs repainting.
	clock.Advance(PatchInterval)
	require.NoError(t, l.Step())
	assert.Equal(t, 1, surface.fills)
	assert.Empty(t, surface.fillRects)

	q.axes = [2]int16{20000, 0}
	clock.Advance(PatchInterval)
	require.NoError(t, l.Step())
	moved := l.Patch()
	require.Equal(t, Patch{X: first.X + 5, Y: first.Y}, moved)
	assert.Equal(t, 1, surface.fills)
	require.Len(t, surface.fillRects, 1)
	assert.Equal(t, image.Rect(first.X, first.Y, first.X+PatchSize, first.Y+PatchSize), surface.fillRects[0])

	for y := first.Y; y < first.Y+PatchSize; y++ {
		for x := first.X; x < moved.X; x++ {
			require.Equal(t, render.Background, surface.Canvas.RGBAAt(x, y), "pixel %d,%d left behind", x, y)
		}
	}
}
