package translate

import (
	"context"
	"errors"
)

// AutoDetect asks the translation client to detect the source language
const AutoDetect = "auto"

// ErrEmptyTranslation is reported when the service answers without any text
var ErrEmptyTranslation = errors.New("translation service returned no text")

// Request is a single text to translate
type Request struct {
	Text   string
	Source string // language code or AutoDetect
	Target string
}

// Result is the outcome of one translation call: either Text (Err == nil)
// or the reason the call failed.
type Result struct {
	Text     string
	Detected string // source language reported by the service, if any
	Err      error
}

// Ok reports whether the call produced a translation
func (r Result) Ok() bool {
	return r.Err == nil
}

// Success builds a successful result
func Success(text string) Result {
	return Result{Text: text}
}

// Failure builds a failed result
func Failure(err error) Result {
	return Result{Err: err}
}

// Client is the external translation capability
type Client interface {
	Translate(ctx context.Context, req Request) Result
	Name() string
}

// ClientFunc adapts a function to the Client interface
type ClientFunc func(ctx context.Context, req Request) Result

// Translate calls f
func (f ClientFunc) Translate(ctx context.Context, req Request) Result {
	return f(ctx, req)
}

// Name identifies function-backed clients in logs
func (f ClientFunc) Name() string {
	return "func"
}
