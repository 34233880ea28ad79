package event

// Package event defines the write-only channel that background download and
// translation runs use to report progress and completion to the UI. Every
// event carries the id of the run that produced it so concurrent runs can be
// routed to their own progress indicators.
