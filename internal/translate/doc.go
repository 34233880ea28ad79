package translate

// Package translate implements the subtitle translation pipeline: a per-line
// translator with bounded retry over an external translation client, the
// coordinator that walks a document in order while reporting progress, and
// the task service that runs translations on background goroutines for the UI.
