//go:build linux

package input

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DevicePattern matches the evdev nodes scanned for gamepads and keyboards.
var DevicePattern = "/dev/input/event*"

// input_event = timeval + u16 type + u16 code + s32 value.
var (
	timevalSize = binary.Size(unix.Timeval{})
	eventSize   = timevalSize + 2 + 2 + 4
)

// decodeRecords parses a buffer of whole input_event records.
func decodeRecords(buf []byte, fn func(inputRecord)) {
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		fn(inputRecord{
			Type:  binary.NativeEndian.Uint16(rec[timevalSize : timevalSize+2]),
			Code:  binary.NativeEndian.Uint16(rec[timevalSize+2 : timevalSize+4]),
			Value: int32(binary.NativeEndian.Uint32(rec[timevalSize+4 : timevalSize+8])),
		})
	}
}

// ioctl request encoding from linux/ioctl.h
func ioc(dir, typ, nr, size uintptr) uintptr {
	const (
		iocNRShift   = 0
		iocTypeShift = 8
		iocSizeShift = 16
		iocDirShift  = 30
	)
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

const iocRead = 2

type inputAbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

func eviocgName(size int) uintptr    { return ioc(iocRead, 'E', 0x06, uintptr(size)) }
func eviocgBit(ev, size int) uintptr { return ioc(iocRead, 'E', 0x20+uintptr(ev), uintptr(size)) }
func eviocgAbs(axis int) uintptr {
	return ioc(iocRead, 'E', 0x40+uintptr(axis), unsafe.Sizeof(inputAbsInfo{}))
}

func ioctlPtr(fd int, req uintptr, ptr unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(ptr))
	if errno != 0 {
		return errno
	}
	return nil
}

// evdevDevice is one open /dev/input/event* node.
type evdevDevice struct {
	path    string
	name    string
	fd      int
	keyBits []byte
	absBits []byte
	buf     []byte
}

func openEvdev(path string) (*evdevDevice, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &evdevDevice{
		path:    path,
		fd:      fd,
		keyBits: make([]byte, keyMax/8+1),
		absBits: make([]byte, absMax/8+1),
		buf:     make([]byte, eventSize*64),
	}
	if err := ioctlPtr(fd, eviocgBit(evKey, len(d.keyBits)), unsafe.Pointer(&d.keyBits[0])); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("EVIOCGBIT(EV_KEY) on %s: %w", path, err)
	}
	// Devices without absolute axes reject EV_ABS; they simply have none.
	_ = ioctlPtr(fd, eviocgBit(evAbs, len(d.absBits)), unsafe.Pointer(&d.absBits[0]))

	name := make([]byte, 256)
	if err := ioctlPtr(fd, eviocgName(len(name)), unsafe.Pointer(&name[0])); err == nil {
		if n := bytes.IndexByte(name, 0); n >= 0 {
			name = name[:n]
		}
		d.name = string(name)
	}
	return d, nil
}

func (d *evdevDevice) absRange(axis int) absRange {
	var info inputAbsInfo
	if err := ioctlPtr(d.fd, eviocgAbs(axis), unsafe.Pointer(&info)); err != nil {
		return absRange{Min: -32768, Max: 32767}
	}
	return absRange{Min: info.Minimum, Max: info.Maximum}
}

// drain reads every queued record without blocking.
func (d *evdevDevice) drain(fn func(inputRecord)) error {
	for {
		n, err := unix.Read(d.fd, d.buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				return nil
			}
			return err
		}
		if n < eventSize {
			return nil
		}
		decodeRecords(d.buf[:n], fn)
	}
}

func (d *evdevDevice) close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}

// eventPaths lists the evdev nodes in numeric order, so event10 follows event9.
func eventPaths() []string {
	paths, _ := filepath.Glob(DevicePattern)
	number := func(p string) int {
		n, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(p), "event"))
		if err != nil {
			return -1
		}
		return n
	}
	sort.SliceStable(paths, func(i, j int) bool { return number(paths[i]) < number(paths[j]) })
	return paths
}

func gamepadPaths() []string {
	var out []string
	for _, p := range eventPaths() {
		d, err := openEvdev(p)
		if err != nil {
			continue
		}
		if isGamepad(d.keyBits, d.absBits) {
			out = append(out, p)
		}
		_ = d.close()
	}
	return out
}

// CountGamepads reports how many connected evdev devices look like gamepads.
func CountGamepads() int { return len(gamepadPaths()) }

// EvdevGamepad is a gamepad read straight from its evdev node.
type EvdevGamepad struct {
	dev    *evdevDevice
	pad    padTranslator
	gone   bool
	Logger logger
}

// OpenGamepad opens the index-th gamepad in device order.
func OpenGamepad(index int, log logger) (Gamepad, error) {
	paths := gamepadPaths()
	if len(paths) == 0 {
		return nil, ErrNoGamepad
	}
	if index < 0 || index >= len(paths) {
		return nil, fmt.Errorf("gamepad %d of %d: %w", index, len(paths), ErrNoGamepad)
	}
	dev, err := openEvdev(paths[index])
	if err != nil {
		return nil, err
	}
	g := &EvdevGamepad{dev: dev, Logger: log}
	g.pad.buttons = buttonIndexes(dev.keyBits)
	g.pad.ranges[AxisHorizontal] = dev.absRange(absX)
	g.pad.ranges[AxisVertical] = dev.absRange(absY)
	if log != nil {
		log.Infof("input", "gamepad %q at %s, %d buttons", dev.name, dev.path, len(g.pad.buttons))
	}
	return g, nil
}

func (g *EvdevGamepad) Poll() []Event {
	if g.gone {
		return nil
	}
	var out []Event
	err := g.dev.drain(func(rec inputRecord) { out = g.pad.translate(rec, out) })
	if err != nil {
		// Unplugged: keep the last state and stop reading.
		g.gone = true
		if g.Logger != nil {
			g.Logger.Errorf("input", "gamepad %s read failed: %v", g.dev.path, err)
		}
	}
	return out
}

func (g *EvdevGamepad) Axis(axis int) int16 {
	if axis < 0 || axis >= len(g.pad.axes) {
		return 0
	}
	return g.pad.axes[axis]
}

func (g *EvdevGamepad) Name() string { return g.dev.name }

func (g *EvdevGamepad) Close() error { return g.dev.close() }

// Keyboards reports Escape and Menu presses from every keyboard-like device.
type Keyboards struct {
	devs   []*evdevDevice
	Logger logger
}

// OpenKeyboards opens every evdev node that has an Escape key and is not a
// gamepad. Finding none is not an error.
func OpenKeyboards(log logger) *Keyboards {
	k := &Keyboards{Logger: log}
	for _, p := range eventPaths() {
		d, err := openEvdev(p)
		if err != nil {
			continue
		}
		if !isKeyboard(d.keyBits, d.absBits) {
			_ = d.close()
			continue
		}
		k.devs = append(k.devs, d)
		if log != nil {
			log.Infof("input", "keyboard %q at %s", d.name, d.path)
		}
	}
	return k
}

func (k *Keyboards) Poll() []Event {
	var out []Event
	live := k.devs[:0]
	for _, d := range k.devs {
		if err := d.drain(func(rec inputRecord) { out = translateKeyboard(rec, out) }); err != nil {
			if k.Logger != nil {
				k.Logger.Errorf("input", "keyboard %s read failed: %v", d.path, err)
			}
			_ = d.close()
			continue
		}
		live = append(live, d)
	}
	k.devs = live
	return out
}

func (k *Keyboards) Close() error {
	var errs []error
	for _, d := range k.devs {
		if err := d.close(); err != nil {
			errs = append(errs, err)
		}
	}
	k.devs = nil
	return errors.Join(errs...)
}
