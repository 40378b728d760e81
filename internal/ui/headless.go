package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Headless decides whether prompts, spinners and full-screen views may be used
type Headless struct {
	forced *bool
}

// NewHeadless detects headless mode from the TTY state of os.Stdin
func NewHeadless() *Headless {
	return &Headless{}
}

// IsHeadless returns true when the UI must not prompt or animate.
// Force overrides TTY detection.
func (h *Headless) IsHeadless() bool {
	if h == nil {
		return true
	}
	if h.forced != nil {
		return *h.forced
	}
	return !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Force overrides TTY detection
func (h *Headless) Force(headless bool) {
	h.forced = &headless
}

// ClearForce reverts to TTY detection
func (h *Headless) ClearForce() {
	h.forced = nil
}
