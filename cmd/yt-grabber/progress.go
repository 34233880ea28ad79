package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/ytget/yt-grabber/internal/event"
)

const progressBarWidth = 30

// progressRenderer draws one progress bar per run on a terminal, or prints a
// line per percentage change otherwise
type progressRenderer struct {
	out         io.Writer
	interactive bool

	mu      sync.Mutex
	labels  map[string]string
	titles  map[string]string
	bars    map[string]*progressbar.ProgressBar
	lastPct map[string]int
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{
		out:         out,
		interactive: isTerminal(out),
		labels:      make(map[string]string),
		titles:      make(map[string]string),
		bars:        make(map[string]*progressbar.ProgressBar),
		lastPct:     make(map[string]int),
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// track names a run so its events can be labelled
func (r *progressRenderer) track(runID, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels[runID] = label
	r.lastPct[runID] = -1
}

// retitle replaces a run's label once a better name is known. It may be
// called before track.
func (r *progressRenderer) retitle(runID, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles[runID] = title
}

// handle renders one event
func (r *progressRenderer) handle(ev event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	label := r.titles[ev.RunID]
	if label == "" {
		label = r.labels[ev.RunID]
	}
	if label == "" {
		label = ev.RunID
	}

	switch {
	case ev.Kind.IsProgress():
		if ev.Percent == r.lastPct[ev.RunID] {
			return
		}
		r.lastPct[ev.RunID] = ev.Percent
		if r.interactive {
			_ = r.bar(ev.RunID, label).Set(ev.Percent)
			return
		}
		fmt.Fprintf(r.out, "%s: %d%%\n", label, ev.Percent)
	case ev.Kind.IsTerminal():
		if bar, ok := r.bars[ev.RunID]; ok {
			if ev.Kind != event.KindError {
				_ = bar.Finish()
			}
			fmt.Fprintln(r.out)
			delete(r.bars, ev.RunID)
		}
		if ev.Kind == event.KindError {
			fmt.Fprintf(r.out, "%s: error: %s\n", label, ev.Message)
		} else {
			fmt.Fprintf(r.out, "%s: %s\n", label, ev.Message)
		}
	}
}

func (r *progressRenderer) bar(runID, label string) *progressbar.ProgressBar {
	if bar, ok := r.bars[runID]; ok {
		return bar
	}
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	r.bars[runID] = bar
	return bar
}

// drain renders events until the queue is closed
func (r *progressRenderer) drain(q *event.Queue) {
	for ev := range q.Events() {
		r.handle(ev)
	}
}
