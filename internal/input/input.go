// Package input turns gamepads, keyboards and process signals into the small
// set of discrete events the frame loop reacts to.
package input

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGamepad is returned when no gamepad is connected.
	ErrNoGamepad = errors.New("no gamepad detected")
	// ErrUnavailable is returned when a backend was not compiled in.
	ErrUnavailable = errors.New("input backend not available in this build")
)

type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventButtonDown
)

type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyMenu
)

// GuideButton is the joystick button index of a standard pad's Guide button.
const GuideButton = 8

// Analog axes read by Gamepad.Axis.
const (
	AxisHorizontal = 0
	AxisVertical   = 1
)

type Event struct {
	Kind   EventKind
	Key    Key
	Button int
}

func (e Event) String() string {
	switch e.Kind {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		switch e.Key {
		case KeyEscape:
			return "key-down escape"
		case KeyMenu:
			return "key-down menu"
		}
		return "key-down other"
	case EventButtonDown:
		return fmt.Sprintf("button-down %d", e.Button)
	}
	return "unknown"
}

// Source yields discrete events. Poll never blocks and returns everything
// queued since the previous call.
type Source interface {
	Poll() []Event
	Close() error
}

// Gamepad is a Source with analog axes. Axis values use the signed 16-bit range.
type Gamepad interface {
	Source
	Axis(axis int) int16
	Name() string
}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

type multiSource []Source

// Multi drains several sources in order as one. Nil sources are skipped.
func Multi(sources ...Source) Source {
	var m multiSource
	for _, s := range sources {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multiSource) Poll() []Event {
	var out []Event
	for _, s := range m {
		out = append(out, s.Poll()...)
	}
	return out
}

func (m multiSource) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
