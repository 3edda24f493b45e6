// Package watcher polls the clipboard and saves every distinct image it sees.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/toolazy/internal/clipboard"
	"github.com/zhubert/toolazy/internal/errors"
	"github.com/zhubert/toolazy/internal/logger"
	"github.com/zhubert/toolazy/internal/numbering"
)

const (
	defaultPollInterval = time.Second

	// maxSaveAttempts bounds how often a save re-allocates a number after the
	// chosen name appeared on disk before it could be created.
	maxSaveAttempts = 5
)

// Saved describes an image written to disk.
type Saved struct {
	Name   string // Base file name, e.g. TC_AFE_03.png
	Path   string
	Number int
	Hash   string
	Origin string // clipboard.OriginClipboard or the referenced file path
}

// Watcher polls a clipboard source and writes each new image to dir.
type Watcher struct {
	source clipboard.Source
	dir    string
	prefix string
	logger *slog.Logger

	// Options
	once         bool          // Run a single tick and return
	pollInterval time.Duration // Wait between ticks
	onSave       []func(Saved) // Called after every successful save
}

// Option configures the watcher.
type Option func(*Watcher)

// WithOnce configures the watcher to run a single tick and exit.
func WithOnce(once bool) Option {
	return func(w *Watcher) { w.once = once }
}

// WithPollInterval sets the wait between ticks.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithLogger replaces the watcher's logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithOnSave registers fn to be called after each saved image.
func WithOnSave(fn func(Saved)) Option {
	return func(w *Watcher) { w.onSave = append(w.onSave, fn) }
}

// New creates a watcher saving images from source into dir as
// TC_<prefix>_<NN>.png.
func New(source clipboard.Source, dir, prefix string, opts ...Option) *Watcher {
	w := &Watcher{
		source:       source,
		dir:          dir,
		prefix:       prefix,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.WithComponent("watcher").With("run", uuid.NewString())
	}
	return w
}

// Run polls until ctx is cancelled, which is a clean shutdown and returns nil.
// Any other error ends the loop and is returned without retrying.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher starting",
		"dir", w.dir,
		"prefix", w.prefix,
		"interval", w.pollInterval,
		"once", w.once,
	)

	// The last hash lives only in this loop
	last, _, err := w.Tick(ctx, "")
	if err != nil {
		return w.stopped(ctx, err)
	}
	if w.once {
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("context cancelled, shutting down")
			return nil
		case <-ticker.C:
			last, _, err = w.Tick(ctx, last)
			if err != nil {
				return w.stopped(ctx, err)
			}
		}
	}
}

func (w *Watcher) stopped(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		w.logger.Info("context cancelled, shutting down")
		return nil
	}
	w.logger.Error("tick failed", "error", err)
	return err
}

// Tick performs one poll. last is the hash of the image seen on the previous
// tick ("" if none); the returned hash is what the next tick should receive.
// saved is non-nil only when an image was written.
func (w *Watcher) Tick(ctx context.Context, last string) (next string, saved *Saved, err error) {
	if err := ctx.Err(); err != nil {
		return last, nil, err
	}

	snap, err := w.source.Read()
	if err != nil {
		return last, nil, err
	}

	img := snap.Image()
	if img == nil {
		if !snap.Empty() {
			w.logger.Debug("clipboard content is not a usable image", "kind", snap.Kind)
		}
		if last != "" {
			w.logger.Debug("clipboard no longer holds an image", "kind", snap.Kind)
		}
		return "", nil, nil
	}

	hash := img.Hash()
	if hash == last {
		return last, nil, nil
	}

	saved, err = w.save(img, hash)
	if err != nil {
		return last, nil, err
	}

	w.logger.Info("saved image",
		"file", saved.Name,
		"origin", saved.Origin,
		"width", img.Width,
		"height", img.Height,
		"hash", hash,
	)
	for _, fn := range w.onSave {
		fn(*saved)
	}
	return hash, saved, nil
}

// save writes img under the lowest free number. The file is created
// exclusively so a name that appears between allocation and creation is
// never overwritten; allocation is then retried.
func (w *Watcher) save(img *clipboard.Image, hash string) (*Saved, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, errors.SaveFailed(w.dir, err)
	}

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		n, err := numbering.Next(w.dir, w.prefix)
		if err != nil {
			return nil, err
		}
		name := numbering.FileName(w.prefix, n)
		path := filepath.Join(w.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			w.logger.Debug("file name taken before create, retrying", "file", name, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, errors.SaveFailed(path, err)
		}

		if err := img.EncodePNG(f); err != nil {
			f.Close()
			os.Remove(path)
			return nil, errors.SaveFailed(path, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return nil, errors.SaveFailed(path, err)
		}

		return &Saved{
			Name:   name,
			Path:   path,
			Number: n,
			Hash:   hash,
			Origin: img.Origin,
		}, nil
	}

	return nil, errors.SaveExhausted(w.dir, maxSaveAttempts)
}
