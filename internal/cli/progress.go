package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// scanProgress reports scan progress with a progress bar on stderr.
type scanProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newScanProgress(quiet bool) *scanProgress {
	return &scanProgress{quiet: quiet}
}

func (p *scanProgress) OnDiscoveryStart() {
	if p.quiet {
		return
	}
	fmt.Fprintln(os.Stderr, "Discovering files...")
}

func (p *scanProgress) OnDiscoveryComplete(fileCount int) {
	if p.quiet || fileCount == 0 {
		return
	}

	p.bar = progressbar.NewOptions(fileCount,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
	)
}

func (p *scanProgress) OnFileScanned(path string, entries int) {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *scanProgress) OnScanComplete(totalEntries int) {
	if p.bar != nil {
		p.bar.Finish()
		fmt.Fprintln(os.Stderr)
		p.bar = nil
	}
}
