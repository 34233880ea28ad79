package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/yt-grabber/internal/app"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/translate"
)

// upperClient translates by upper-casing the text
func upperClient() translate.Client {
	return translate.ClientFunc(func(_ context.Context, req translate.Request) translate.Result {
		return translate.Success(strings.ToUpper(req.Text))
	})
}

// stubRunner reports two progress samples and writes nothing
type stubRunner struct {
	err error
}

func (r stubRunner) Run(_ context.Context, url string, opts download.Options, progress func(download.Progress)) (*download.Result, error) {
	progress(download.Progress{Downloaded: 512, Total: 1024, Title: "Clip"})
	progress(download.Progress{Downloaded: 1024, Total: 1024, Title: "Clip"})
	if r.err != nil {
		return nil, r.err
	}
	return &download.Result{OutputPath: filepath.Join(filepath.Dir(opts.Output), "clip.mp4")}, nil
}

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := "[download]\noutput_dir = \"" + filepath.ToSlash(filepath.Join(dir, "out")) + "\"\n" +
		"[translation]\nretry_delay_seconds = 0.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, opts ...app.Option) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(opts...)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substring string) {
	t.Helper()
	if !strings.Contains(output, substring) {
		t.Fatalf("expected output to contain %q, got: %s", substring, output)
	}
}
