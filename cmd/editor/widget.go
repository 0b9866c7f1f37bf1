package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// fileWidget shows the buffer in a file. Writes made by the session are
// remembered so the watcher does not report them back as local edits.
type fileWidget struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	written string
}

func newFileWidget(path string, logger *zap.Logger) *fileWidget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileWidget{path: path, logger: logger.With(zap.String("path", path))}
}

// SetText writes the buffer to the file. On failure the file keeps its old
// contents, which the next check reports as a change.
func (w *fileWidget) SetText(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.written = text
	if err := os.WriteFile(w.path, []byte(text), 0o644); err != nil {
		w.logger.Error("Failed to write buffer to file", zap.Error(err))
	}
}

// check reads the file and reports its contents when they differ from the
// last write
func (w *fileWidget) check() (string, bool) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn("Failed to read file", zap.Error(err))
			return "", false
		}
		data = nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	text := string(data)
	if text == w.written {
		return "", false
	}
	w.written = text
	return text, true
}

// Watch polls the file until ctx is done
func (w *fileWidget) Watch(ctx context.Context, every time.Duration, onChange func(string)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if text, ok := w.check(); ok {
				onChange(text)
			}
		}
	}
}
