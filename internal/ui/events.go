package ui

import (
	"fmt"
	"strings"

	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/translate"
)

// runView is the part of the form that reacts to run events. Methods are
// called on the UI thread.
type runView interface {
	setDownloadPercent(percent int)
	setTranslatePercent(percent int)
	downloadEnded(runID string)
	showResult(kind event.Kind, message, path string)
	showFailure(message string)
}

// isTranslationRun reports whether runID belongs to a translation run
func isTranslationRun(runID string) bool {
	return strings.HasPrefix(runID, translate.TaskIDPrefix)
}

// dispatch applies one event to the view. Finished and error events show a
// popup and reset the bar of the run that ended.
func dispatch(v runView, ev event.Event) {
	switch ev.Kind {
	case event.KindProgress:
		v.setDownloadPercent(ev.Percent)
	case event.KindTranslateProgress:
		v.setTranslatePercent(ev.Percent)
	case event.KindVideoFinished, event.KindSubtitlesFinished, event.KindThumbnailFinished:
		v.showResult(ev.Kind, ev.Message, ev.Path)
		v.setDownloadPercent(0)
		v.downloadEnded(ev.RunID)
	case event.KindTranslateFinished:
		v.showResult(ev.Kind, ev.Message, ev.Path)
		v.setTranslatePercent(0)
	case event.KindError:
		v.showFailure(fmt.Sprintf(ErrorMessageFormat, ev.Message))
		if isTranslationRun(ev.RunID) {
			v.setTranslatePercent(0)
			return
		}
		v.setDownloadPercent(0)
		v.downloadEnded(ev.RunID)
	}
}

// pump dispatches queued events until the queue is closed. post runs a
// function on the UI thread.
func pump(q *event.Queue, v runView, post func(func())) {
	for ev := range q.Events() {
		post(func() { dispatch(v, ev) })
	}
}
