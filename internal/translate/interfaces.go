package translate

import (
	"context"

	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/model"
)

// Translator defines the interface for the translation service.
type Translator interface {
	SetUpdateCallback(func(*model.TranslationTask))
	StartTranslation(ctx context.Context, inputPath, target string, sink event.Sink) (*model.TranslationTask, error)
	Snapshot(taskID string) (model.TranslationTask, bool)
	Wait()
}

var _ Translator = (*Service)(nil)
