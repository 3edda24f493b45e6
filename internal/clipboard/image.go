package clipboard

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/zhubert/toolazy/internal/logger"
)

// OriginClipboard marks an image that came from raw clipboard data.
const OriginClipboard = "clipboard"

// Image is a decoded clipboard image.
type Image struct {
	img    image.Image
	Format string // Decoder that recognized the data (png, jpeg, bmp, ...)
	Origin string // OriginClipboard or the referenced file path
	Width  int
	Height int
}

// NewImage wraps an already decoded image.
func NewImage(img image.Image, format, origin string) *Image {
	b := img.Bounds()
	return &Image{
		img:    img,
		Format: format,
		Origin: origin,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// Image resolves the snapshot to a decoded image. It returns nil when the
// snapshot holds no image, including when a referenced file is missing, has an
// unsupported extension, or cannot be decoded.
func (s Snapshot) Image() *Image {
	switch s.Kind {
	case KindImage:
		if len(s.Data) == 0 {
			return nil
		}
		img, format, err := image.Decode(bytes.NewReader(s.Data))
		if err != nil {
			logger.Warn("Clipboard: Failed to decode %d bytes of image data: %v", len(s.Data), err)
			return nil
		}
		logger.Debug("Clipboard: Image decoded: %dx%d, format=%s", img.Bounds().Dx(), img.Bounds().Dy(), format)
		return NewImage(img, format, OriginClipboard)

	case KindFileRef:
		if len(s.Paths) == 0 {
			return nil
		}
		return openImageFile(s.Paths[0])
	}
	return nil
}

func openImageFile(path string) *Image {
	if !IsSupportedFile(path) {
		logger.Debug("Clipboard: Ignoring file reference with unsupported extension: %s", path)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Debug("Clipboard: Failed to open %s: %v", path, err)
		return nil
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		logger.Debug("Clipboard: Failed to decode %s: %v", path, err)
		return nil
	}
	return NewImage(img, format, path)
}

// Hash returns the hex SHA-256 of the image dimensions and its pixels
// normalized to 16-bit NRGBA. Identical pixels hash identically whatever
// encoding they arrived in, and 16-bit channels keep their full precision.
func (i *Image) Hash() string {
	b := i.img.Bounds()
	pix := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pix, pix.Bounds(), i.img, b.Min, draw.Src)

	h := sha256.New()
	fmt.Fprintf(h, "%dx%d\n", b.Dx(), b.Dy())
	h.Write(pix.Pix)
	return hex.EncodeToString(h.Sum(nil))
}

// EncodePNG writes the image to w as PNG.
func (i *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, i.img); err != nil {
		return fmt.Errorf("failed to encode image as PNG: %w", err)
	}
	return nil
}
