package event

import (
	"fmt"

	"github.com/ytget/yt-grabber/internal/model"
)

// Kind names an event posted to the UI
type Kind string

const (
	KindProgress          Kind = "PROGRESS"
	KindTranslateProgress Kind = "TRANSLATE_PROGRESS"
	KindVideoFinished     Kind = "VIDEO_FINISHED"
	KindSubtitlesFinished Kind = "SUBTITLES_FINISHED"
	KindThumbnailFinished Kind = "THUMBNAIL_FINISHED"
	KindTranslateFinished Kind = "TRANSLATE_FINISHED"
	KindError             Kind = "ERROR"
)

// IsProgress reports whether the event carries a percentage
func (k Kind) IsProgress() bool {
	return k == KindProgress || k == KindTranslateProgress
}

// IsTerminal reports whether the event ends a run
func (k Kind) IsTerminal() bool {
	switch k {
	case KindVideoFinished, KindSubtitlesFinished, KindThumbnailFinished, KindTranslateFinished, KindError:
		return true
	default:
		return false
	}
}

// FinishedKind maps a content type to its completion event
func FinishedKind(ct model.ContentType) (Kind, error) {
	switch ct {
	case model.ContentVideo:
		return KindVideoFinished, nil
	case model.ContentSubtitles:
		return KindSubtitlesFinished, nil
	case model.ContentThumbnail:
		return KindThumbnailFinished, nil
	default:
		return "", fmt.Errorf("no completion event for content type %q", ct)
	}
}

// Event is a single notification from a background run
type Event struct {
	Kind    Kind
	RunID   string
	Percent int    // set for progress kinds, 0..100
	Message string // set for finished and error kinds
	Path    string // output file, when the run produced one
}

// String renders the event for logs
func (e Event) String() string {
	if e.Kind.IsProgress() {
		return fmt.Sprintf("%s[%s] %d%%", e.Kind, e.RunID, e.Percent)
	}
	return fmt.Sprintf("%s[%s] %s", e.Kind, e.RunID, e.Message)
}

// Progress builds a progress event of the given kind
func Progress(kind Kind, runID string, percent int) Event {
	return Event{Kind: kind, RunID: runID, Percent: clampPercent(percent)}
}

// Finished builds a completion event
func Finished(kind Kind, runID, message string) Event {
	return Event{Kind: kind, RunID: runID, Message: message}
}

// Error builds an error event from err
func Error(runID string, err error) Event {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Event{Kind: KindError, RunID: runID, Message: msg}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
