package download

import (
	"context"
	"sync"

	"github.com/ytget/yt-grabber/internal/event"
)

// fakeRunner replays progress samples and returns a fixed result
type fakeRunner struct {
	mu       sync.Mutex
	samples  []Progress
	result   *Result
	errs     []error // returned in order, one per call; nil once exhausted
	calls    []Options
	urls     []string
	block    chan struct{} // when set, Run waits for it to close
	started  chan string   // when set, receives the URL of every started run
	active   int
	maxSeen  int
	finished int
}

func (f *fakeRunner) Run(ctx context.Context, url string, opts Options, progress func(Progress)) (*Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, opts)
	f.urls = append(f.urls, url)
	f.active++
	f.maxSeen = max(f.maxSeen, f.active)
	var err error
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.finished++
		f.mu.Unlock()
	}()

	if f.started != nil {
		f.started <- url
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	for _, p := range f.samples {
		if progress != nil {
			progress(p)
		}
	}
	if err != nil {
		return nil, err
	}
	return f.result, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordingSink) Emit(ev event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) snapshot() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}
