package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/yt-grabber/internal/app"
)

func TestRootShowsHelpWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, []string{"--config", writeTestConfig(t, dir)})
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	requireContains(t, out, "download")
	requireContains(t, out, "translate")
}

func TestDownloadCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	out, _, err := runCLI(t,
		[]string{"--config", cfgPath, "download", "--type", "video", "https://youtu.be/abc"},
		app.WithRunner(stubRunner{}),
	)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	requireContains(t, out, "Clip: 50%")
	requireContains(t, out, "Video Download Complete")
	requireContains(t, out, "Clip")
	requireContains(t, out, "clip.mp4")
	requireContains(t, out, "1.0 kB")
}

func TestDownloadCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	out, _, err := runCLI(t,
		[]string{"--config", cfgPath, "download", "--type", "thumbnail", "https://youtu.be/abc"},
		app.WithRunner(stubRunner{err: errors.New("network down")}),
	)
	if err == nil {
		t.Fatal("expected error for failed download")
	}
	requireContains(t, err.Error(), "1 of 1 downloads failed")
	requireContains(t, out, "error: ")
	requireContains(t, out, "Failed")
}

func TestDownloadCommandRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown type", []string{"download", "--type", "audio", "https://youtu.be/abc"}, "unsupported content type"},
		{"bad resolution", []string{"download", "--resolution", "4k", "https://youtu.be/abc"}, "unsupported resolution"},
		{"missing url", []string{"download"}, "requires at least 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfgPath}, tt.args...)
			_, _, err := runCLI(t, args, app.WithRunner(stubRunner{}))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			requireContains(t, err.Error(), tt.want)
		})
	}
}

func TestTranslateCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	input := filepath.Join(dir, "clip.en.srt")
	srt := "1\n00:00:01,000 --> 00:00:02,000\nHello there\n"
	if err := os.WriteFile(input, []byte(srt), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t,
		[]string{"--config", cfgPath, "translate", input},
		app.WithTranslationClient(upperClient()),
	)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	requireContains(t, out, "clip.en.srt: 100%")
	requireContains(t, out, "Translation completed successfully!")

	outputPath := filepath.Join(dir, "en-ru_translated.srt")
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "HELLO THERE") {
		t.Fatalf("output not translated: %q", data)
	}
	requireContains(t, out, outputPath)
}

func TestTranslateCommandFailures(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	noTag := filepath.Join(dir, "subtitles")
	if err := os.WriteFile(noTag, []byte("Hello\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t,
		[]string{"--config", cfgPath, "translate", noTag},
		app.WithTranslationClient(upperClient()),
	)
	if err == nil {
		t.Fatal("expected error for file without language tag")
	}
	requireContains(t, err.Error(), "1 of 1 translations failed")
	requireContains(t, out, "failed: ")

	_, _, err = runCLI(t,
		[]string{"--config", cfgPath, "translate", "--target", "not a language", noTag},
		app.WithTranslationClient(upperClient()),
	)
	if err == nil {
		t.Fatal("expected error for invalid target language")
	}
}
