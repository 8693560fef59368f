package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestDimensions(t *testing.T) {
	data := pngBytes(t, 640, 480)

	w, h, err := Dimensions(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 640 || h != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", w, h)
	}
}

func TestDimensions_NotAnImage(t *testing.T) {
	if _, _, err := Dimensions(bytes.NewReader([]byte("%PDF-1.4 not an image"))); err == nil {
		t.Fatal("Dimensions succeeded on non-image data")
	}
}

func TestThumbnailPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/uploads/abc.png", "/uploads/abc_thumb.jpg"},
		{"/uploads/abc.webp", "/uploads/abc_thumb.jpg"},
		{"abc.jpeg", "abc_thumb.jpg"},
	}
	for _, tt := range tests {
		if got := ThumbnailPath(tt.in); got != tt.want {
			t.Errorf("ThumbnailPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "large.png")
	if err := os.WriteFile(src, pngBytes(t, 800, 600), 0o644); err != nil {
		t.Fatalf("writing source image: %v", err)
	}

	dst, err := Thumbnail(src)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("opening thumbnail: %v", err)
	}
	defer f.Close()

	w, h, err := Dimensions(f)
	if err != nil {
		t.Fatalf("Dimensions on thumbnail: %v", err)
	}
	if w > ThumbnailMaxSize || h > ThumbnailMaxSize {
		t.Errorf("thumbnail = %dx%d, exceeds max edge %d", w, h, ThumbnailMaxSize)
	}
}
