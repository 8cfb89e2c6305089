//go:build linux

package fbinfo

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// FBIOGET_VSCREENINFO from linux/fb.h
const fbiogetVScreenInfo = 0x4600

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// varScreenInfo mirrors struct fb_var_screeninfo; the kernel writes the whole
// struct so every field has to be present.
type varScreenInfo struct {
	Xres         uint32
	Yres         uint32
	XresVirtual  uint32
	YresVirtual  uint32
	Xoffset      uint32
	Yoffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          fbBitfield
	Green        fbBitfield
	Blue         fbBitfield
	Transp       fbBitfield
	Nonstd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	Pixclock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HsyncLen     uint32
	VsyncLen     uint32
	Sync         uint32
	Vmode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

// Probe opens path read/write and asks the driver for its visible resolution.
// The descriptor is closed before returning.
func Probe(path string) (Geometry, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return Geometry{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	var info varScreenInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), fbiogetVScreenInfo, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return Geometry{}, fmt.Errorf("FBIOGET_VSCREENINFO on %s: %w", path, errno)
	}
	if info.Xres == 0 || info.Yres == 0 {
		return Geometry{}, ErrEmptyMode
	}
	return Geometry{Width: int(info.Xres), Height: int(info.Yres)}, nil
}
