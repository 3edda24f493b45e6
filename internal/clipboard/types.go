// Package clipboard reads images from the system clipboard, either as raw
// image data or as a reference to an image file on disk.
package clipboard

import (
	"path/filepath"
	"strings"
)

// Kind describes what a clipboard snapshot holds.
type Kind int

const (
	// KindEmpty means the clipboard holds nothing usable.
	KindEmpty Kind = iota
	// KindImage means the clipboard holds encoded image bytes.
	KindImage
	// KindFileRef means the clipboard holds one or more file paths.
	KindFileRef
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindFileRef:
		return "file"
	default:
		return "empty"
	}
}

// SupportedExtensions lists the file extensions a file reference may point at.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// Snapshot is a single read of the clipboard. It has no identity and is
// re-read on every poll.
type Snapshot struct {
	Kind  Kind
	Data  []byte   // Encoded image bytes (KindImage)
	Paths []string // Referenced files (KindFileRef), only the first is used
}

// Source provides clipboard snapshots.
type Source interface {
	Read() (Snapshot, error)
}

// Empty reports whether the snapshot holds no usable content.
func (s Snapshot) Empty() bool {
	switch s.Kind {
	case KindImage:
		return len(s.Data) == 0
	case KindFileRef:
		return len(s.Paths) == 0
	default:
		return true
	}
}

// IsSupportedFile reports whether path has one of SupportedExtensions,
// ignoring case.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
