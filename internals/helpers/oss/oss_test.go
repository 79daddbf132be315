package helper

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"
)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 120, 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLogoPipeline(t *testing.T) {
	webpData, err := LogoToWebP(samplePNG(t, 1200, 300), "logo.png", 600)
	if err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(webpData, "logo.webp")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 150 {
		t.Errorf("fitted size = %dx%d, want 600x150", b.Dx(), b.Dy())
	}

	pngData, err := WebPToPNG(webpData, 200)
	if err != nil {
		t.Fatal(err)
	}
	small, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatal(err)
	}
	if b := small.Bounds(); b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("pdf logo size = %dx%d, want 200x50", b.Dx(), b.Dy())
	}
}

func TestDecodeImageRejectsText(t *testing.T) {
	if _, err := DecodeImage([]byte("hello"), "notes.txt"); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("err = %v", err)
	}
}

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	key := BuildObjectKey("/documents/receipts/", "abc", ".pdf", now)
	if !strings.HasPrefix(key, "documents/receipts/abc_20250102_030405_") || !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key = %q", key)
	}
}

func TestPublicURL(t *testing.T) {
	if got := publicURL("https://cdn.example.com/", "b", "oss.example.com", "k/x.pdf"); got != "https://cdn.example.com/k/x.pdf" {
		t.Errorf("with base: %q", got)
	}
	if got := publicURL("", "bucket", "https://oss-ap.aliyuncs.com", "k.pdf"); got != "https://bucket.oss-ap.aliyuncs.com/k.pdf" {
		t.Errorf("without base: %q", got)
	}
}
