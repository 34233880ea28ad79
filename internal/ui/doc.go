// Package ui contains the Fyne desktop front-end: a single form that starts
// downloads and subtitle translations and renders their events.
//
// Work runs on the download and translation services; their events reach the
// window through an event.Queue that a pump goroutine drains into fyne.Do.
// All UI strings are localized via Localization.
package ui
