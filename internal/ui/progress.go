package ui

import (
	"io"
	"sync"

	"github.com/Belphemur/ToshoSubtitles/internal/config"

	"github.com/schollz/progressbar/v3"
)

// ProgressOverlay is a single progress bar with a message. It is either hidden or
// visible; showing it again only updates the message and the fill.
type ProgressOverlay struct {
	mu      sync.Mutex
	out     io.Writer
	bar     *progressbar.ProgressBar
	message string
	percent int
}

// NewProgressOverlay creates a hidden overlay drawing to out
func NewProgressOverlay(out io.Writer) *ProgressOverlay {
	return &ProgressOverlay{out: out}
}

// Show makes the overlay visible with message and percent (clamped to 0..100)
func (o *ProgressOverlay) Show(message string, percent int) {
	percent = min(max(percent, 0), 100)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.message = message
	o.percent = percent

	if o.bar == nil {
		o.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(o.out),
			progressbar.OptionSetDescription(message),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	} else {
		o.bar.Describe(message)
	}

	if err := o.bar.Set(percent); err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Msg("Failed to render progress")
	}
}

// Hide removes the overlay. Hiding a hidden overlay does nothing.
func (o *ProgressOverlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.bar == nil {
		return
	}
	if err := o.bar.Clear(); err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Msg("Failed to clear progress")
	}
	o.bar = nil
	o.message = ""
	o.percent = 0
}

// Visible reports whether the overlay is shown
func (o *ProgressOverlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bar != nil
}

// State returns the current message and percent. Both are zero values when hidden.
func (o *ProgressOverlay) State() (string, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.message, o.percent
}
