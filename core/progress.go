package core

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// tracker draws a progress bar on stderr while report charts render.
type tracker struct {
	bar *progressbar.ProgressBar
}

func newTracker(w io.Writer, label string, total int) *tracker {
	if w == nil {
		w = os.Stderr
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &tracker{bar: bar}
}

// Tick advances the bar by one. Safe for concurrent use.
func (t *tracker) Tick() {
	_ = t.bar.Add(1)
}

// Finish completes and clears the bar.
func (t *tracker) Finish() {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}
