package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

// progressReporter draws download progress. The bar is created on the first
// update so nothing is drawn when extraction fails.
type progressReporter struct {
	out io.Writer
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out}
}

// Update implements domain.ProgressFunc
func (p *progressReporter) Update(progress domain.DownloadProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		p.bar = progressbar.NewOptions64(progress.TotalBytes,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(p.out, "\n")
			}),
		)
	}
	if progress.TotalBytes > 0 && p.bar.GetMax64() != progress.TotalBytes {
		p.bar.ChangeMax64(progress.TotalBytes)
	}
	_ = p.bar.Set64(progress.BytesReceived)
}

// Finish completes the bar if one was drawn, or leaves it where the
// transfer stopped
func (p *progressReporter) Finish(completed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		return
	}
	if completed {
		_ = p.bar.Finish()
		return
	}
	fmt.Fprint(p.out, "\n")
}
