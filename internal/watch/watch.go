// Package watch re-reads a file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jacoelho/jsondot/internal/ratelimit"
)

// Snapshot is one read of the watched file.
type Snapshot struct {
	Text    string
	ModTime time.Time
	Size    int64
}

func (s Snapshot) changed(info os.FileInfo) bool {
	return !info.ModTime().Equal(s.ModTime) || info.Size() != s.Size
}

// Watcher polls a file and hands each new snapshot to a callback.
type Watcher struct {
	path    string
	limiter *ratelimit.Limiter
	log     *slog.Logger
}

func New(path string, limiter *ratelimit.Limiter, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		path:    path,
		limiter: limiter,
		log:     log.With("file", path),
	}
}

// Run calls onChange with the current contents, then again after every
// change, until ctx is done. A callback error stops the watcher and is
// returned. Read failures after the first snapshot are logged and retried.
func (w *Watcher) Run(ctx context.Context, onChange func(Snapshot) error) error {
	last, err := w.read()
	if err != nil {
		return err
	}
	if err := onChange(last); err != nil {
		return err
	}

	ticker := time.NewTicker(w.limiter.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		info, err := os.Stat(w.path)
		if err != nil {
			w.log.Warn("stat failed", "error", err)
			continue
		}
		if !last.changed(info) {
			continue
		}

		if err := w.limiter.Wait(ctx); err != nil {
			return nil
		}

		snap, err := w.read()
		if err != nil {
			w.log.Warn("read failed", "error", err)
			continue
		}
		w.log.Debug("file changed", "size", snap.Size, "modified", snap.ModTime)

		last = snap
		if err := onChange(snap); err != nil {
			return err
		}
	}
}

func (w *Watcher) read() (Snapshot, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to stat %s: %w", w.path, err)
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read %s: %w", w.path, err)
	}
	return Snapshot{Text: string(data), ModTime: info.ModTime(), Size: info.Size()}, nil
}
