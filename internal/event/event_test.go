package event

import (
	"errors"
	"sync"
	"testing"

	"github.com/ytget/yt-grabber/internal/model"
)

func TestFinishedKind(t *testing.T) {
	tests := []struct {
		ct       model.ContentType
		expected Kind
		wantErr  bool
	}{
		{model.ContentVideo, KindVideoFinished, false},
		{model.ContentSubtitles, KindSubtitlesFinished, false},
		{model.ContentThumbnail, KindThumbnailFinished, false},
		{model.ContentType("audio"), "", true},
	}

	for _, tt := range tests {
		got, err := FinishedKind(tt.ct)
		if (err != nil) != tt.wantErr {
			t.Errorf("FinishedKind(%q) error = %v, wantErr %v", tt.ct, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("FinishedKind(%q) = %q, expected %q", tt.ct, got, tt.expected)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !KindProgress.IsProgress() || !KindTranslateProgress.IsProgress() {
		t.Error("progress kinds should report IsProgress")
	}
	if KindError.IsProgress() {
		t.Error("ERROR is not a progress kind")
	}
	for _, k := range []Kind{KindVideoFinished, KindSubtitlesFinished, KindThumbnailFinished, KindTranslateFinished, KindError} {
		if !k.IsTerminal() {
			t.Errorf("%s should be terminal", k)
		}
	}
	if KindProgress.IsTerminal() {
		t.Error("PROGRESS should not be terminal")
	}
}

func TestProgressClamps(t *testing.T) {
	if e := Progress(KindProgress, "r", 150); e.Percent != 100 {
		t.Errorf("expected clamp to 100, got %d", e.Percent)
	}
	if e := Progress(KindProgress, "r", -5); e.Percent != 0 {
		t.Errorf("expected clamp to 0, got %d", e.Percent)
	}
}

func TestErrorEvent(t *testing.T) {
	e := Error("run-1", errors.New("boom"))
	if e.Kind != KindError || e.Message != "boom" || e.RunID != "run-1" {
		t.Errorf("unexpected event %+v", e)
	}
	if e := Error("run-2", nil); e.Message != "" {
		t.Errorf("nil error should produce empty message, got %q", e.Message)
	}
}

func TestQueue_PreservesOrderAndCloses(t *testing.T) {
	q := NewQueue(4)

	var wg sync.WaitGroup
	wg.Add(1)
	var got []int
	go func() {
		defer wg.Done()
		for e := range q.Events() {
			got = append(got, e.Percent)
		}
	}()

	for i := 1; i <= 20; i++ {
		q.Emit(Progress(KindTranslateProgress, "run", i*5))
	}
	q.Close()
	wg.Wait()

	if len(got) != 20 {
		t.Fatalf("expected 20 events, got %d", len(got))
	}
	for i, p := range got {
		if p != (i+1)*5 {
			t.Errorf("event %d: expected %d, got %d", i, (i+1)*5, p)
		}
	}

	if err := q.TryEmit(Progress(KindProgress, "run", 1)); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("expected ErrQueueClosed after Close, got %v", err)
	}
	q.Close()
}

func TestFanout(t *testing.T) {
	var a, b []Event
	f := Fanout{
		SinkFunc(func(e Event) { a = append(a, e) }),
		nil,
		SinkFunc(func(e Event) { b = append(b, e) }),
	}
	f.Emit(Finished(KindTranslateFinished, "r", "done"))

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected both sinks to receive one event, got %d and %d", len(a), len(b))
	}
	Discard.Emit(a[0])
}
