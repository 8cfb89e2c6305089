//go:build !linux

package input

func CountGamepads() int { return 0 }

func OpenGamepad(index int, log logger) (Gamepad, error) { return nil, ErrNoGamepad }

// Keyboards is only implemented on Linux; it never reports anything here.
type Keyboards struct{}

func OpenKeyboards(log logger) *Keyboards { return &Keyboards{} }
func (k *Keyboards) Poll() []Event        { return nil }
func (k *Keyboards) Close() error         { return nil }
