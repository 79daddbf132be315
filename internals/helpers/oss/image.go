package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = fmt.Errorf("unsupported image format, use jpg/png/webp")

// DecodeImage sniffs the content first and falls back to the file extension.
func DecodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	kind := http.DetectContentType(head)
	if !strings.HasPrefix(kind, "image/") {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	}

	r := bytes.NewReader(all)
	switch {
	case strings.Contains(kind, "jpeg"), kind == "jpg":
		return jpeg.Decode(r)
	case strings.Contains(kind, "png"):
		return png.Decode(r)
	case strings.Contains(kind, "webp"):
		return webp.Decode(r)
	}
	return nil, ErrUnsupportedImage
}

// LogoToWebP fits the image inside maxSide x maxSide and re-encodes it as lossy WebP.
func LogoToWebP(all []byte, filename string, maxSide int) ([]byte, error) {
	img, err := DecodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > maxSide || b.Dy() > maxSide {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: 82}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// WebPToPNG converts a stored logo for embedding in PDFs, downscaling to maxSide.
func WebPToPNG(data []byte, maxSide int) ([]byte, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode webp: %w", err)
	}
	img = downscale(img, maxSide)
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func downscale(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}
	nw, nh := maxSide, maxSide
	if w > h {
		nh = h * maxSide / w
	} else {
		nw = w * maxSide / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
