// Package clipboard shells out to the system clipboard utility: xclip on
// X11, wl-clipboard on Wayland. Which one is installed is probed per call;
// having neither is a distinct error, never a silent no-op.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoUtility means no usable clipboard utility is installed.
var ErrNoUtility = errors.New("no clipboard utility found (install xclip or wl-clipboard)")

// Clipboard is the narrow capability set the CLI needs.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// tool is one copy/paste command pair.
type tool struct {
	copyCmd  []string
	pasteCmd []string
}

var (
	xclipTool = tool{
		copyCmd:  []string{"xclip", "-selection", "clipboard"},
		pasteCmd: []string{"xclip", "-selection", "clipboard", "-o"},
	}
	waylandTool = tool{
		copyCmd:  []string{"wl-copy"},
		pasteCmd: []string{"wl-paste"},
	}
)

// system probes PATH lazily so that a missing utility only matters for
// invocations that actually touch the clipboard.
type system struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// New returns the system clipboard.
func New() Clipboard {
	return &system{lookPath: exec.LookPath, getenv: os.Getenv}
}

// pick returns the utility pair for the running display server, preferring
// wl-clipboard when a Wayland session is active and falling back to
// whichever utility is actually installed.
func (s *system) pick() (tool, error) {
	order := []tool{xclipTool, waylandTool}
	if s.getenv("WAYLAND_DISPLAY") != "" {
		order = []tool{waylandTool, xclipTool}
	}
	for _, t := range order {
		if _, err := s.lookPath(t.copyCmd[0]); err == nil {
			return t, nil
		}
	}
	return tool{}, ErrNoUtility
}

func (s *system) Read() (string, error) {
	t, err := s.pick()
	if err != nil {
		return "", err
	}
	cmd := exec.Command(t.pasteCmd[0], t.pasteCmd[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", t.pasteCmd[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (s *system) Write(text string) error {
	t, err := s.pick()
	if err != nil {
		return err
	}
	cmd := exec.Command(t.copyCmd[0], t.copyCmd[1:]...)
	cmd.Stdin = bytes.NewReader([]byte(text))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", t.copyCmd[0], err)
	}
	return nil
}
