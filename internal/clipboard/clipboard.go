package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/toolazy/internal/errors"
	"github.com/zhubert/toolazy/internal/logger"
)

// System reads the operating system clipboard.
type System struct {
	once    sync.Once
	initErr error
}

// NewSystem returns a Source backed by the system clipboard.
// The clipboard is initialized on first use.
func NewSystem() *System {
	return &System{}
}

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func (s *System) Init() error {
	s.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.Error("Clipboard: Failed to initialize: %v", err)
			s.initErr = errors.ClipboardInitFailed(err)
			return
		}
		logger.Info("Clipboard: Initialized successfully")
	})
	return s.initErr
}

// Read takes a snapshot of the clipboard. Image data takes precedence over
// text; text is only kept when it names files.
func (s *System) Read() (Snapshot, error) {
	if err := s.Init(); err != nil {
		return Snapshot{}, err
	}

	if data := clipboard.Read(clipboard.FmtImage); len(data) > 0 {
		logger.Debug("Clipboard: Read %d bytes of image data", len(data))
		return Snapshot{Kind: KindImage, Data: data}, nil
	}

	text := clipboard.Read(clipboard.FmtText)
	if len(text) == 0 {
		return Snapshot{}, nil
	}

	paths := ParseFileRefs(string(text))
	if len(paths) == 0 {
		return Snapshot{}, nil
	}
	logger.Debug("Clipboard: Read %d file reference(s), first=%s", len(paths), paths[0])
	return Snapshot{Kind: KindFileRef, Paths: paths}, nil
}
