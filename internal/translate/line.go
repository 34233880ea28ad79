package translate

import (
	"context"
	"log"
	"time"
)

// Retry defaults
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 1 * time.Second
)

// AttemptFailure describes one failed translation attempt
type AttemptFailure struct {
	Line    int // index of the line in its document, -1 when unknown
	Attempt int // 1-based attempt number
	Err     error
}

// LineTranslator translates single caption lines with bounded retry. A line
// whose attempts are all exhausted is returned unchanged.
type LineTranslator struct {
	client      Client
	source      string
	maxAttempts int
	delay       time.Duration
	logger      *log.Logger
	onFailure   func(AttemptFailure)
	sleep       func(ctx context.Context, d time.Duration) error
}

// LineOption configures a LineTranslator
type LineOption func(*LineTranslator)

// WithMaxAttempts sets the number of attempts per line (minimum 1)
func WithMaxAttempts(n int) LineOption {
	return func(t *LineTranslator) {
		if n < 1 {
			n = 1
		}
		t.maxAttempts = n
	}
}

// WithRetryDelay sets the pause between attempts
func WithRetryDelay(d time.Duration) LineOption {
	return func(t *LineTranslator) {
		if d < 0 {
			d = 0
		}
		t.delay = d
	}
}

// WithSource sets the source language; empty means AutoDetect
func WithSource(lang string) LineOption {
	return func(t *LineTranslator) { t.source = lang }
}

// WithLogger sets the logger used for failed attempts
func WithLogger(l *log.Logger) LineOption {
	return func(t *LineTranslator) { t.logger = l }
}

// WithAttemptHook registers a callback invoked for every failed attempt
func WithAttemptHook(fn func(AttemptFailure)) LineOption {
	return func(t *LineTranslator) { t.onFailure = fn }
}

// NewLineTranslator creates a translator with the default retry policy
func NewLineTranslator(client Client, opts ...LineOption) *LineTranslator {
	t := &LineTranslator{
		client:      client,
		source:      AutoDetect,
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultRetryDelay,
		logger:      log.Default(),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.source == "" {
		t.source = AutoDetect
	}
	return t
}

// MaxAttempts returns the configured attempts per line
func (t *LineTranslator) MaxAttempts() int {
	return t.maxAttempts
}

// Translate translates text into target. The second return value is false
// when every attempt failed and text is returned unchanged.
func (t *LineTranslator) Translate(ctx context.Context, text, target string) (string, bool) {
	return t.translateLine(ctx, -1, text, target)
}

func (t *LineTranslator) translateLine(ctx context.Context, index int, text, target string) (string, bool) {
	req := Request{Text: text, Source: t.source, Target: target}

	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return text, false
		}

		res := t.client.Translate(ctx, req)
		if res.Ok() {
			return res.Text, true
		}

		t.reportFailure(AttemptFailure{Line: index, Attempt: attempt, Err: res.Err})

		if attempt == t.maxAttempts {
			break
		}
		if err := t.sleep(ctx, t.delay); err != nil {
			return text, false
		}
	}

	return text, false
}

func (t *LineTranslator) reportFailure(f AttemptFailure) {
	if t.logger != nil {
		if f.Line >= 0 {
			t.logger.Printf("Error translating line %d (attempt %d/%d): %v", f.Line, f.Attempt, t.maxAttempts, f.Err)
		} else {
			t.logger.Printf("Error translating text (attempt %d/%d): %v", f.Attempt, t.maxAttempts, f.Err)
		}
	}
	if t.onFailure != nil {
		t.onFailure(f)
	}
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
