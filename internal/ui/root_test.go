package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/app"
	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/translate"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"https video", "https://www.youtube.com/watch?v=abc", false},
		{"http short link", "http://youtu.be/abc", false},
		{"ftp scheme", "ftp://example.com/file", true},
		{"no scheme", "youtube.com/watch?v=abc", true},
		{"no host", "https://", true},
		{"broken escape", "https://example.com/%zz", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestCleanURL(t *testing.T) {
	got := cleanURL("  https://youtu.be/abc\r\n\t")
	if got != "https://youtu.be/abc" {
		t.Errorf("cleanURL = %q", got)
	}
}

func TestIsTranslationRun(t *testing.T) {
	if !isTranslationRun("translate-0190") {
		t.Error("translate- prefix not recognised")
	}
	if isTranslationRun("task-0190") {
		t.Error("download run treated as translation")
	}
}

func TestWatchTranslations_DisablesButtonWhileRunning(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	entered := make(chan struct{})
	release := make(chan struct{})
	client := translate.ClientFunc(func(_ context.Context, req translate.Request) translate.Result {
		close(entered)
		<-release
		return translate.Success(req.Text)
	})

	cfg := config.Default()
	cfg.Download.OutputDir = t.TempDir()
	cfg.Translation.RetryDelaySeconds = 0
	services := app.New(&cfg, app.WithTranslationClient(client))

	ui := &RootUI{services: services, translateBtn: widget.NewButton("", nil)}
	ui.watchTranslations()

	input := filepath.Join(t.TempDir(), "talk.en.srt")
	if err := os.WriteFile(input, []byte("1\nHello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := services.Translations.StartTranslation(context.Background(), input, "ru", nil); err != nil {
		t.Fatalf("StartTranslation: %v", err)
	}

	<-entered
	if !ui.translateBtn.Disabled() {
		t.Error("translate button enabled while a run is active")
	}

	close(release)
	services.Translations.Wait()
	if ui.translateBtn.Disabled() {
		t.Error("translate button still disabled after the run finished")
	}
}
