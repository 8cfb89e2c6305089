package input

// ScriptedGamepad replays a fixed sequence of polls. The simulator drives the
// frame loop with it.
type ScriptedGamepad struct {
	// Steps[i] is what the i-th Poll observes. Once exhausted, Poll returns
	// nothing and the axes rest at zero.
	Steps []ScriptStep

	polls  int
	axes   [2]int16
	closed bool
}

type ScriptStep struct {
	Events []Event
	Axes   [2]int16
}

func (g *ScriptedGamepad) Poll() []Event {
	if g.polls >= len(g.Steps) {
		g.axes = [2]int16{}
		g.polls++
		return nil
	}
	step := g.Steps[g.polls]
	g.polls++
	g.axes = step.Axes
	return step.Events
}

func (g *ScriptedGamepad) Axis(axis int) int16 {
	if axis < 0 || axis >= len(g.axes) {
		return 0
	}
	return g.axes[axis]
}

func (g *ScriptedGamepad) Name() string { return "scripted" }

func (g *ScriptedGamepad) Close() error {
	g.closed = true
	return nil
}

// Polls reports how many times Poll was called.
func (g *ScriptedGamepad) Polls() int { return g.polls }

// Closed reports whether Close was called.
func (g *ScriptedGamepad) Closed() bool { return g.closed }
