package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// Progress is a terminal progress bar for per-entry pack/unpack work.
// It stays silent when disabled or when stderr is not a TTY, so JSON logs
// and piped output remain clean.
type Progress struct {
	container   *mpb.Progress
	bar         *mpb.Bar
	enabled     bool
	description string
}

const descWidth = 24

// NewProgress creates a progress bar over total steps. The bar renders on
// stderr; stdout stays reserved for command output.
func NewProgress(total int, enabled bool) *Progress {
	p := &Progress{enabled: enabled && isTerminal()}
	if !p.enabled {
		return p
	}

	fmt.Fprintln(os.Stderr)

	p.container = mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithWidth(64),
		mpb.WithRefreshRate(100*time.Millisecond),
	)

	p.bar = p.container.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("█").Tip("█").Padding("░").Rbound("]"),
		mpb.PrependDecorators(
			decor.Any(func(decor.Statistics) string {
				if len(p.description) > descWidth {
					return p.description[:descWidth-2] + ".."
				}
				return p.description
			}, decor.WC{W: descWidth, C: decor.DindentRight}),
			decor.Name("  "),
			decor.CountersNoUnit("%d/%d", decor.WC{C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)

	return p
}

// Update sets the current step count and the entry name shown next to the bar.
func (p *Progress) Update(current int, description string) {
	if !p.enabled || p.bar == nil {
		return
	}
	p.description = description
	p.bar.SetCurrent(int64(current))
}

// Finish waits for the bar to render its final state and releases it.
func (p *Progress) Finish() {
	if !p.enabled || p.container == nil {
		return
	}
	p.container.Wait()
	fmt.Fprintln(os.Stderr)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
