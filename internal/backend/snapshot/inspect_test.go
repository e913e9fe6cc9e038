package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, format string, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		t.Fatalf("unsupported test format %s", format)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestInspect_KnownFormats(t *testing.T) {
	tests := []struct {
		format string
		width  int
		height int
	}{
		{"png", 4, 3},
		{"jpeg", 16, 9},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data := encodeTestImage(t, tt.format, tt.width, tt.height)
			info, err := Inspect(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Inspect error: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("expected format %s, got %s", tt.format, info.Format)
			}
			if info.Width != tt.width || info.Height != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, info.Width, info.Height)
			}
		})
	}
}

func TestInspect_InvalidData(t *testing.T) {
	if _, err := Inspect(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected error for invalid image data")
	}
}
