// Package system adjusts the Linux console while the framebuffer is in use.
package system

import (
	"errors"
	"fmt"
	"os"
)

const (
	hideCursorSeq = "\x1b[?25l"
	showCursorSeq = "\x1b[?25h"
)

// DefaultConsolePaths are tried in order: the controlling terminal, then the
// active virtual terminal.
var DefaultConsolePaths = []string{"/dev/tty", "/dev/tty0"}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Console puts the active VT into graphics mode and hides its cursor so the
// text console does not draw over the framebuffer. Restore undoes Enter.
type Console struct {
	Paths  []string
	Logger logger

	graphics bool
	hidden   bool
}

func NewConsole(log logger) *Console {
	return &Console{Paths: DefaultConsolePaths, Logger: log}
}

// Enter is best-effort: both steps are attempted and their errors joined.
func (c *Console) Enter() error {
	var errs []error
	if err := forEachPath(c.Paths, func(p string) error { return setKDMode(p, kdGraphics) }); err != nil {
		c.logError("KD_GRAPHICS failed: %v", err)
		errs = append(errs, err)
	} else {
		c.graphics = true
		c.logInfo("KD_GRAPHICS set")
	}
	if err := forEachPath(c.Paths, func(p string) error { return writeVT(p, hideCursorSeq) }); err != nil {
		c.logError("hide cursor failed: %v", err)
		errs = append(errs, err)
	} else {
		c.hidden = true
		c.logInfo("cursor hidden")
	}
	return errors.Join(errs...)
}

// Restore only reverts what Enter managed to change.
func (c *Console) Restore() error {
	var errs []error
	if c.hidden {
		if err := forEachPath(c.Paths, func(p string) error { return writeVT(p, showCursorSeq) }); err != nil {
			c.logError("show cursor failed: %v", err)
			errs = append(errs, err)
		} else {
			c.hidden = false
			c.logInfo("cursor shown")
		}
	}
	if c.graphics {
		if err := forEachPath(c.Paths, func(p string) error { return setKDMode(p, kdText) }); err != nil {
			c.logError("KD_TEXT failed: %v", err)
			errs = append(errs, err)
		} else {
			c.graphics = false
			c.logInfo("KD_TEXT set")
		}
	}
	return errors.Join(errs...)
}

func (c *Console) logInfo(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("tty", format, args...)
	}
}

func (c *Console) logError(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("tty", format, args...)
	}
}

// forEachPath stops at the first path fn succeeds on.
func forEachPath(paths []string, fn func(string) error) error {
	var lastErr error
	for _, p := range paths {
		err := fn(p)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no console paths configured")
}

func writeVT(path, seq string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(seq); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
