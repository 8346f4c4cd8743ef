// Package imaging normalizes uploaded photos to bounded WebP images.
package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/matchsage/booking-api/internal/httperr"
)

const ContentType = "image/webp"

type Normalizer struct {
	MaxSide int
	Quality float32
}

func NewNormalizer() *Normalizer {
	return &Normalizer{MaxSide: 1024, Quality: 80}
}

// Normalize decodes a JPEG, PNG or WebP image, scales it down so that its
// longest side fits MaxSide and encodes it as WebP.
func (n *Normalizer) Normalize(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, httperr.ValidationErr("invalid_image")
	}

	img := n.fit(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: n.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Normalizer) fit(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if n.MaxSide <= 0 || (w <= n.MaxSide && h <= n.MaxSide) {
		return src
	}

	if w >= h {
		h = h * n.MaxSide / w
		w = n.MaxSide
	} else {
		w = w * n.MaxSide / h
		h = n.MaxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
