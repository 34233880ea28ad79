package translate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ytget/yt-grabber/internal/subtitle"
)

func newTestPipeline(client Client, opts ...PipelineOption) *Pipeline {
	tr := NewLineTranslator(client, WithLogger(quietLogger()), WithRetryDelay(0))
	return NewPipeline(tr, opts...)
}

func TestPipelineRun_TranslatesCaptionsAndReportsProgress(t *testing.T) {
	client := &mapClient{dict: map[string]string{"Hello": "Привет"}}
	p := newTestPipeline(client)

	var progress []int
	doc := subtitle.Parse("1\n00:00:01,000 --> 00:00:02,000\nHello\n")
	out, stats := p.Run(context.Background(), doc, "ru", func(pct int) { progress = append(progress, pct) })

	if got := out.String(); got != "1\n00:00:01,000 --> 00:00:02,000\nПривет\n" {
		t.Errorf("unexpected output %q", got)
	}
	if !reflect.DeepEqual(progress, []int{25, 50, 75, 100}) {
		t.Errorf("unexpected progress %v", progress)
	}
	if stats.Lines != 4 || stats.Translated != 1 || stats.Structural != 3 || stats.Fallbacks != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if len(client.calls) != 1 {
		t.Errorf("structural lines must not reach the client, got %d calls", len(client.calls))
	}
}

func TestPipelineRun_TrailingBlankLines(t *testing.T) {
	p := newTestPipeline(&mapClient{dict: map[string]string{"Hello": "Привет"}})

	var progress []int
	in := "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n"
	out, _ := p.Run(context.Background(), subtitle.Parse(in), "ru", func(pct int) { progress = append(progress, pct) })

	if got := out.String(); got != "1\n00:00:01,000 --> 00:00:02,000\nПривет\n\n" {
		t.Errorf("unexpected output %q", got)
	}
	if !reflect.DeepEqual(progress, []int{20, 40, 60, 80, 100}) {
		t.Errorf("unexpected progress %v", progress)
	}
}

func TestPipelineRun_StructuralLinesUnchanged(t *testing.T) {
	// Marks every line it translates
	client := ClientFunc(func(_ context.Context, req Request) Result {
		return Success("X" + req.Text)
	})
	p := newTestPipeline(client)

	in := "12\r\n00:01:00,000 --> 00:01:02,500\r\nLine one\r\n  \r\n13\r\nLine two"
	doc := subtitle.Parse(in)
	out, _ := p.Run(context.Background(), doc, "de", nil)

	if out.Len() != doc.Len() {
		t.Fatalf("line count changed: %d -> %d", doc.Len(), out.Len())
	}
	for i, line := range doc.Lines {
		if line.Kind == subtitle.Structural && out.Lines[i].Raw != line.Raw {
			t.Errorf("structural line %d changed: %q -> %q", i, line.Raw, out.Lines[i].Raw)
		}
	}
	if out.Lines[2].Raw != "XLine one\r" {
		t.Errorf("expected carriage return kept on translated line, got %q", out.Lines[2].Raw)
	}
	if out.Lines[5].Raw != "XLine two" {
		t.Errorf("unexpected last line %q", out.Lines[5].Raw)
	}
}

func TestPipelineRun_MultilineResultKeepsLineCount(t *testing.T) {
	client := ClientFunc(func(_ context.Context, req Request) Result {
		return Success("a\nb")
	})
	p := newTestPipeline(client)

	doc := subtitle.Parse("1\n00:00:01,000 --> 00:00:02,000\nHello")
	out, _ := p.Run(context.Background(), doc, "ru", nil)

	written := subtitle.Parse(out.String())
	if written.Len() != doc.Len() {
		t.Fatalf("written output has %d lines, input had %d", written.Len(), doc.Len())
	}
	if got := out.Lines[2].Raw; got != "a b" {
		t.Errorf("translated line = %q, expected %q", got, "a b")
	}
}

func TestPipelineRun_FailingLineFallsBack(t *testing.T) {
	client := &failingClient{fail: map[string]bool{"Hello": true}}
	var failures []AttemptFailure
	tr := NewLineTranslator(client,
		WithMaxAttempts(2),
		WithRetryDelay(0),
		WithLogger(quietLogger()),
		WithAttemptHook(func(f AttemptFailure) { failures = append(failures, f) }),
	)
	p := NewPipeline(tr)

	var progress []int
	in := "1\n00:00:01,000 --> 00:00:02,000\nHello\nWorld"
	out, stats := p.Run(context.Background(), subtitle.Parse(in), "ru", func(pct int) { progress = append(progress, pct) })

	if out.String() != in {
		t.Errorf("expected unchanged output, got %q", out.String())
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failed attempts, got %d", len(failures))
	}
	if failures[0].Line != 2 {
		t.Errorf("expected failures reported for line 2, got %d", failures[0].Line)
	}
	if stats.Fallbacks != 1 || stats.Translated != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if len(progress) != 4 || progress[3] != 100 {
		t.Errorf("progress must still cover every line, got %v", progress)
	}
}

func TestPipelineRun_EchoIsIdempotent(t *testing.T) {
	p := newTestPipeline(&mapClient{})
	in := "1\n00:00:01,000 --> 00:00:02,000\nПривет\n\n2\n00:00:03,000 --> 00:00:04,000\nМир\n"

	first, _ := p.Run(context.Background(), subtitle.Parse(in), "ru", nil)
	second, _ := p.Run(context.Background(), subtitle.Parse(first.String()), "ru", nil)

	if second.String() != in {
		t.Errorf("echo translation changed the document:\n%q\n%q", in, second.String())
	}
}

func TestPipelineRun_ProgressMonotonic(t *testing.T) {
	p := newTestPipeline(&mapClient{})
	in := "1\n00:00:01,000 --> 00:00:02,000\na\nb\nc\n\n2\n00:00:03,000 --> 00:00:04,000\nd\n"

	var progress []int
	doc := subtitle.Parse(in)
	p.Run(context.Background(), doc, "ru", func(pct int) { progress = append(progress, pct) })

	if len(progress) != doc.Len() {
		t.Fatalf("expected one event per line (%d), got %d", doc.Len(), len(progress))
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Errorf("progress decreased at %d: %v", i, progress)
		}
	}
	if progress[len(progress)-1] != 100 {
		t.Errorf("progress must end at 100, got %v", progress)
	}
}

func TestPercentDone(t *testing.T) {
	tests := []struct{ done, total, expected int }{
		{1, 3, 33},
		{2, 3, 66},
		{3, 3, 100},
		{1, 7, 14},
		{0, 0, 100},
	}
	for _, tt := range tests {
		if got := percentDone(tt.done, tt.total); got != tt.expected {
			t.Errorf("percentDone(%d, %d) = %d, expected %d", tt.done, tt.total, got, tt.expected)
		}
	}
}

func TestTranslateFile_WritesNextToInput(t *testing.T) {
	fs := newMemFS()
	input := filepath.Join("subs", "en.srt")
	fs.files[input] = []byte("1\n00:00:01,000 --> 00:00:02,000\nHello\n")

	p := newTestPipeline(&mapClient{dict: map[string]string{"Hello": "Привет"}}, WithFileSystem(fs))
	out, err := p.TranslateFile(context.Background(), input, "ru", nil)
	if err != nil {
		t.Fatalf("TranslateFile: %v", err)
	}

	expectedPath := filepath.Join("subs", "en-ru_translated.srt")
	if out.Path != expectedPath {
		t.Errorf("output path = %q, expected %q", out.Path, expectedPath)
	}
	if out.LanguageTag != "en" {
		t.Errorf("language tag = %q, expected en", out.LanguageTag)
	}
	if got := string(fs.files[expectedPath]); got != "1\n00:00:01,000 --> 00:00:02,000\nПривет\n" {
		t.Errorf("written content = %q", got)
	}
}

func TestTranslateFile_CustomOutputName(t *testing.T) {
	fs := newMemFS()
	fs.files["movie.ja.srt"] = []byte("こんにちは")

	p := newTestPipeline(&mapClient{}, WithFileSystem(fs), WithOutputName("-de", "txt"))
	out, err := p.TranslateFile(context.Background(), "movie.ja.srt", "de", nil)
	if err != nil {
		t.Fatalf("TranslateFile: %v", err)
	}
	if out.Path != "ja-de.txt" {
		t.Errorf("output path = %q, expected ja-de.txt", out.Path)
	}
}

func TestTranslateFile_Failures(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		p := newTestPipeline(&mapClient{}, WithFileSystem(newMemFS()))
		_, err := p.TranslateFile(context.Background(), "missing.en.srt", "ru", nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("no language segment", func(t *testing.T) {
		fs := newMemFS()
		fs.files["subtitles"] = []byte("Hello")
		p := newTestPipeline(&mapClient{}, WithFileSystem(fs))
		_, err := p.TranslateFile(context.Background(), "subtitles", "ru", nil)
		if !errors.Is(err, subtitle.ErrNoLanguageTag) {
			t.Errorf("expected ErrNoLanguageTag, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		fs := newMemFS()
		fs.files["en.srt"] = []byte("Hello")
		fs.writeErr = errors.New("disk full")
		p := newTestPipeline(&mapClient{}, WithFileSystem(fs))
		if _, err := p.TranslateFile(context.Background(), "en.srt", "ru", nil); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		fs := newMemFS()
		fs.files["en.srt"] = []byte("Hello")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := newTestPipeline(&mapClient{}, WithFileSystem(fs))
		if _, err := p.TranslateFile(ctx, "en.srt", "ru", nil); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if _, written := fs.files["en-ru_translated.srt"]; written {
			t.Error("no output should be written for an interrupted run")
		}
	})
}

func TestOSFileSystem_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en-ru_translated.srt")

	var fs OSFileSystem
	if err := fs.WriteFile(path, []byte("Привет")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "Привет" {
		t.Errorf("read back %q", data)
	}
}
