package ui

import (
	"context"
	"time"
)

// Animate calls draw with frame indexes 0..frames-1 in a loop, one every
// interval, until ctx is done. It draws frame 0 immediately and returns once
// ctx is cancelled; it never outlives the operation that owns ctx.
func Animate(ctx context.Context, interval time.Duration, frames int, draw func(frame int)) {
	if frames <= 0 || draw == nil {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frame := 0
	for {
		if ctx.Err() != nil {
			return
		}
		draw(frame)
		frame = (frame + 1) % frames

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// loadingIndicator shows an animation while at least one operation is active
type loadingIndicator struct {
	interval time.Duration
	frames   []string
	show     func(text string)

	active int
	cancel context.CancelFunc
	done   chan struct{}
}

func newLoadingIndicator(interval time.Duration, frames []string, show func(string)) *loadingIndicator {
	return &loadingIndicator{interval: interval, frames: frames, show: show}
}

// begin registers an operation; the first one starts the animation.
// Calls must come from one goroutine (the UI thread).
func (l *loadingIndicator) begin() {
	l.active++
	if l.active > 1 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.cancel, l.done = cancel, done
	go func() {
		defer close(done)
		Animate(ctx, l.interval, len(l.frames), func(frame int) {
			l.show(l.frames[frame])
		})
	}()
}

// end unregisters an operation; the last one stops the animation and clears it
func (l *loadingIndicator) end() {
	if l.active == 0 {
		return
	}
	l.active--
	if l.active > 0 {
		return
	}
	l.cancel()
	<-l.done
	l.cancel, l.done = nil, nil
	l.show("")
}
