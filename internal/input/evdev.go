package input

// Linux input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	keyEsc     = 1
	keyCompose = 127
	keyMenu    = 139
	keyMax     = 0x2ff

	btnJoystick = 0x120
	btnDigi     = 0x140

	absX   = 0x00
	absY   = 0x01
	absMax = 0x3f

	keyPressed = 1
)

// inputRecord is the type/code/value part of a struct input_event.
type inputRecord struct {
	Type  uint16
	Code  uint16
	Value int32
}

func testBit(bits []byte, bit int) bool {
	i := bit / 8
	if i >= len(bits) {
		return false
	}
	return bits[i]&(1<<(uint(bit)%8)) != 0
}

// buttonIndexes numbers the supported key codes the way SDL does on Linux:
// BTN_JOYSTICK and above first, then everything below it. On a standard pad
// this puts BTN_MODE at index 8.
func buttonIndexes(keyBits []byte) map[uint16]int {
	indexes := make(map[uint16]int)
	next := 0
	for code := btnJoystick; code < keyMax; code++ {
		if testBit(keyBits, code) {
			indexes[uint16(code)] = next
			next++
		}
	}
	for code := 0; code < btnJoystick; code++ {
		if testBit(keyBits, code) {
			indexes[uint16(code)] = next
			next++
		}
	}
	return indexes
}

func isGamepad(keyBits, absBits []byte) bool {
	if !testBit(absBits, absX) || !testBit(absBits, absY) {
		return false
	}
	for code := btnJoystick; code < btnDigi; code++ {
		if testBit(keyBits, code) {
			return true
		}
	}
	return false
}

func isKeyboard(keyBits, absBits []byte) bool {
	return testBit(keyBits, keyEsc) && !isGamepad(keyBits, absBits)
}

// absRange is the reported range of one absolute axis.
type absRange struct {
	Min int32
	Max int32
}

// scaleAxis maps v from r onto [-32768, 32767].
func scaleAxis(v int32, r absRange) int16 {
	if r.Max <= r.Min {
		return 0
	}
	if v < r.Min {
		v = r.Min
	}
	if v > r.Max {
		v = r.Max
	}
	return int16((int64(v)-int64(r.Min))*65535/(int64(r.Max)-int64(r.Min)) - 32768)
}

// padTranslator keeps the latest axis values of one gamepad and turns its
// button presses into events.
type padTranslator struct {
	buttons map[uint16]int
	ranges  [2]absRange
	axes    [2]int16
}

func (p *padTranslator) translate(rec inputRecord, out []Event) []Event {
	switch rec.Type {
	case evKey:
		if rec.Value != keyPressed {
			return out
		}
		if index, ok := p.buttons[rec.Code]; ok {
			out = append(out, Event{Kind: EventButtonDown, Button: index})
		}
	case evAbs:
		switch rec.Code {
		case absX:
			p.axes[AxisHorizontal] = scaleAxis(rec.Value, p.ranges[AxisHorizontal])
		case absY:
			p.axes[AxisVertical] = scaleAxis(rec.Value, p.ranges[AxisVertical])
		}
	}
	return out
}

// translateKeyboard reports key presses; auto-repeat and releases are dropped.
func translateKeyboard(rec inputRecord, out []Event) []Event {
	if rec.Type != evKey || rec.Value != keyPressed {
		return out
	}
	key := KeyOther
	switch rec.Code {
	case keyEsc:
		key = KeyEscape
	case keyMenu, keyCompose:
		key = KeyMenu
	}
	return append(out, Event{Kind: EventKeyDown, Key: key})
}
