package translate

import (
	"context"
	"fmt"
	"os"

	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/subtitle"
)

// Output file permissions
const OutputFilePermissions = 0644

// ProgressFunc receives the completed percentage after each processed line
type ProgressFunc func(percent int)

// FileSystem is the file capability used to read inputs and write outputs
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileSystem reads with os.ReadFile and writes through a lock file so two
// runs never write the same output at once
type OSFileSystem struct{}

// ReadFile reads path from disk
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path under an advisory lock
func (OSFileSystem) WriteFile(path string, data []byte) error {
	return platform.WriteFileLocked(path, data, OutputFilePermissions)
}

// Stats summarises one pipeline run
type Stats struct {
	Lines      int
	Structural int
	Translated int
	Fallbacks  int
}

// Output describes a written translation
type Output struct {
	Path        string
	LanguageTag string
	Stats       Stats
}

// Pipeline walks a subtitle document line by line, translating caption lines
// and copying structural ones, in original order.
type Pipeline struct {
	translator *LineTranslator
	fs         FileSystem
	suffix     string
	ext        string
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithFileSystem overrides the file capability
func WithFileSystem(fs FileSystem) PipelineOption {
	return func(p *Pipeline) { p.fs = fs }
}

// WithOutputName sets the output suffix and extension
func WithOutputName(suffix, ext string) PipelineOption {
	return func(p *Pipeline) {
		p.suffix = suffix
		p.ext = ext
	}
}

// NewPipeline creates a pipeline around a line translator
func NewPipeline(translator *LineTranslator, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		translator: translator,
		fs:         OSFileSystem{},
		suffix:     subtitle.DefaultOutputSuffix,
		ext:        subtitle.DefaultOutputExt,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run translates doc into target. The result has the same number of lines in
// the same order; progress (if set) is called once per line with
// floor(100*processed/total), ending at exactly 100.
func (p *Pipeline) Run(ctx context.Context, doc subtitle.Document, target string, progress ProgressFunc) (subtitle.Document, Stats) {
	total := doc.Len()
	out := subtitle.Document{Lines: make([]subtitle.Line, total)}
	stats := Stats{Lines: total}

	for i, line := range doc.Lines {
		if line.Kind == subtitle.Translatable {
			text, ok := p.translator.translateLine(ctx, i, line.Text(), target)
			out.Lines[i] = line.WithText(text)
			if ok {
				stats.Translated++
			} else {
				stats.Fallbacks++
			}
		} else {
			out.Lines[i] = line
			stats.Structural++
		}

		if progress != nil {
			progress(percentDone(i+1, total))
		}
	}

	return out, stats
}

// TranslateFile reads inputPath, translates it and writes the result next to
// the input as "{tag}{suffix}.{ext}". Read, naming and write failures end the
// run with an error; per-line failures never do.
func (p *Pipeline) TranslateFile(ctx context.Context, inputPath, target string, progress ProgressFunc) (*Output, error) {
	data, err := p.fs.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}

	tag, err := subtitle.LanguageTag(inputPath)
	if err != nil {
		return nil, fmt.Errorf("language tag: %w", err)
	}

	doc := subtitle.Parse(string(data))
	translated, stats := p.Run(ctx, doc, target, progress)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("translation interrupted: %w", err)
	}

	outputPath := subtitle.OutputPath(inputPath, tag, p.suffix, p.ext)
	if err := p.fs.WriteFile(outputPath, []byte(translated.String())); err != nil {
		return nil, fmt.Errorf("write translated subtitles: %w", err)
	}

	return &Output{Path: outputPath, LanguageTag: tag, Stats: stats}, nil
}

func percentDone(done, total int) int {
	if total <= 0 {
		return 100
	}
	return done * 100 / total
}
