package input

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalSource reports termination signals as quit requests.
type SignalSource struct {
	ch chan os.Signal
}

// NewSignalSource listens for sigs, or SIGINT, SIGTERM and SIGHUP when none
// are given.
func NewSignalSource(sigs ...os.Signal) *SignalSource {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
	}
	s := &SignalSource{ch: make(chan os.Signal, 4)}
	signal.Notify(s.ch, sigs...)
	return s
}

func (s *SignalSource) Poll() []Event {
	var out []Event
	for {
		select {
		case <-s.ch:
			out = append(out, Event{Kind: EventQuit})
		default:
			return out
		}
	}
}

func (s *SignalSource) Close() error {
	signal.Stop(s.ch)
	return nil
}
