package clipboard

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// testImage returns a small image whose pixels depend on seed.
func testImage(w, h int, seed uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: seed, G: uint8(x * 16), B: uint8(y * 16), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestSnapshotImage_RawData(t *testing.T) {
	snap := Snapshot{Kind: KindImage, Data: encodePNG(t, testImage(4, 3, 1))}

	img := snap.Image()
	if img == nil {
		t.Fatal("Image() = nil, want decoded image")
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", img.Width, img.Height)
	}
	if img.Format != "png" {
		t.Errorf("Format = %q, want png", img.Format)
	}
	if img.Origin != OriginClipboard {
		t.Errorf("Origin = %q, want %q", img.Origin, OriginClipboard)
	}
}

func TestSnapshotImage_UndecodableData(t *testing.T) {
	snap := Snapshot{Kind: KindImage, Data: []byte("definitely not an image")}
	if img := snap.Image(); img != nil {
		t.Errorf("Image() = %+v, want nil", img)
	}
}

func TestSnapshotImage_FileRef(t *testing.T) {
	dir := t.TempDir()
	pngPath := writeFile(t, dir, "Shot.PNG", encodePNG(t, testImage(2, 2, 7)))

	var gifBuf bytes.Buffer
	if err := gif.Encode(&gifBuf, testImage(2, 2, 7), nil); err != nil {
		t.Fatal(err)
	}
	gifPath := writeFile(t, dir, "shot.gif", gifBuf.Bytes())
	brokenPath := writeFile(t, dir, "broken.png", []byte("nope"))

	tests := []struct {
		name   string
		paths  []string
		wantOK bool
	}{
		{"supported file with upper-case extension", []string{pngPath}, true},
		{"unsupported extension", []string{gifPath}, false},
		{"missing file", []string{filepath.Join(dir, "missing.png")}, false},
		{"undecodable file", []string{brokenPath}, false},
		{"only the first path is used", []string{gifPath, pngPath}, false},
		{"no paths", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Snapshot{Kind: KindFileRef, Paths: tt.paths}.Image()
			if (img != nil) != tt.wantOK {
				t.Fatalf("Image() = %+v, want image: %v", img, tt.wantOK)
			}
			if img != nil && img.Origin != tt.paths[0] {
				t.Errorf("Origin = %q, want %q", img.Origin, tt.paths[0])
			}
		})
	}
}

func TestSnapshotImage_Empty(t *testing.T) {
	if img := (Snapshot{}).Image(); img != nil {
		t.Errorf("Image() = %+v, want nil", img)
	}
}

func TestHash_SamePixelsAcrossEncodings(t *testing.T) {
	src := testImage(5, 4, 42)

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}

	fromPNG := Snapshot{Kind: KindImage, Data: encodePNG(t, src)}.Image()
	fromBMP := Snapshot{Kind: KindImage, Data: bmpBuf.Bytes()}.Image()
	if fromPNG == nil || fromBMP == nil {
		t.Fatal("both encodings should decode")
	}
	if fromBMP.Format != "bmp" {
		t.Errorf("Format = %q, want bmp", fromBMP.Format)
	}

	if fromPNG.Hash() != fromBMP.Hash() {
		t.Error("identical pixels should hash identically regardless of encoding")
	}
}

func TestHash_SixteenBitPrecision(t *testing.T) {
	sixteenBit := func(r uint16) image.Image {
		img := image.NewRGBA64(image.Rect(0, 0, 2, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				img.SetRGBA64(x, y, color.RGBA64{R: r, G: 0x1234, B: 0x5678, A: 0xffff})
			}
		}
		return img
	}

	// Only the low byte of the red channel differs
	a := Snapshot{Kind: KindImage, Data: encodePNG(t, sixteenBit(0x8001))}.Image()
	b := Snapshot{Kind: KindImage, Data: encodePNG(t, sixteenBit(0x8002))}.Image()
	if a == nil || b == nil {
		t.Fatal("16-bit PNGs should decode")
	}
	if a.Hash() == b.Hash() {
		t.Error("16-bit images differing in the low byte should hash differently")
	}
}

func TestHash_Distinguishes(t *testing.T) {
	base := NewImage(testImage(4, 4, 1), "png", OriginClipboard).Hash()

	if got := NewImage(testImage(4, 4, 1), "png", OriginClipboard).Hash(); got != base {
		t.Error("hash should be deterministic")
	}
	if got := NewImage(testImage(4, 4, 2), "png", OriginClipboard).Hash(); got == base {
		t.Error("different pixels should hash differently")
	}

	// Same pixel count, different shape
	wide := image.NewNRGBA(image.Rect(0, 0, 8, 2))
	tall := image.NewNRGBA(image.Rect(0, 0, 2, 8))
	if NewImage(wide, "png", OriginClipboard).Hash() == NewImage(tall, "png", OriginClipboard).Hash() {
		t.Error("different dimensions should hash differently")
	}
}

func TestHash_IgnoresBoundsOrigin(t *testing.T) {
	img := testImage(3, 3, 9)
	shifted := image.NewNRGBA(image.Rect(10, 10, 13, 13))
	copy(shifted.Pix, img.Pix)

	if NewImage(img, "png", "").Hash() != NewImage(shifted, "png", "").Hash() {
		t.Error("hash should depend on pixels, not on bounds origin")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	src := NewImage(testImage(3, 2, 5), "bmp", OriginClipboard)

	var buf bytes.Buffer
	if err := src.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}

	decoded := Snapshot{Kind: KindImage, Data: buf.Bytes()}.Image()
	if decoded == nil {
		t.Fatal("encoded PNG should decode")
	}
	if decoded.Hash() != src.Hash() {
		t.Error("PNG encoding should preserve pixels")
	}
}
