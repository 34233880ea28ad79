package translate

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

var errServiceDown = errors.New("service unavailable")

// mapClient translates through a fixed dictionary and echoes unknown text
type mapClient struct {
	mu    sync.Mutex
	dict  map[string]string
	calls []Request
}

func (c *mapClient) Translate(_ context.Context, req Request) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if out, ok := c.dict[req.Text]; ok {
		return Success(out)
	}
	return Success(req.Text)
}

func (c *mapClient) Name() string { return "map" }

// failingClient fails for the configured texts and echoes everything else
type failingClient struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls int
}

func (c *failingClient) Translate(_ context.Context, req Request) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.fail == nil || c.fail[req.Text] {
		return Failure(errServiceDown)
	}
	return Success(req.Text)
}

func (c *failingClient) Name() string { return "failing" }

// memFS is an in-memory FileSystem
type memFS struct {
	mu       sync.Mutex
	files    map[string][]byte
	writeErr error
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func noSleep(context.Context, time.Duration) error { return nil }
