package godocument

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// decodeRaster decodes a raster image in any registered format
// (PNG, JPEG, GIF, BMP, TIFF).
func decodeRaster(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// rasterizeSVG renders an SVG document into an RGBA bitmap of the given
// pixel size.
func rasterizeSVG(data []byte, wPx, hPx int) (img image.Image, err error) {
	// oksvg panics on some malformed path/gradient inputs.
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrMalformedVector, r)
		}
	}()

	if wPx <= 0 || hPx <= 0 {
		return nil, ErrMalformedVector
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVector, err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrMalformedVector
	}
	icon.SetTarget(0, 0, float64(wPx), float64(hPx))
	rgba := image.NewRGBA(image.Rect(0, 0, wPx, hPx))
	scanner := rasterx.NewScannerGV(wPx, hPx, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(wPx, hPx, scanner), 1)
	return rgba, nil
}

// scaleImage resizes src to exactly wPx x hPx unless it already matches.
func scaleImage(src image.Image, wPx, hPx int) image.Image {
	if src == nil || wPx <= 0 || hPx <= 0 {
		return src
	}
	b := src.Bounds()
	if b.Dx() == wPx && b.Dy() == hPx {
		return src
	}
	return resize.Resize(uint(wPx), uint(hPx), src, resize.Bilinear)
}

// decodeAt decodes raster or vector content at a target pixel size.
// Raster sources are decoded then scaled; vector sources are rasterized
// directly at the target size.
func decodeAt(data []byte, vector bool, wPx, hPx int) (image.Image, error) {
	if vector {
		return rasterizeSVG(data, wPx, hPx)
	}
	img, err := decodeRaster(data)
	if err != nil {
		return nil, err
	}
	return scaleImage(img, wPx, hPx), nil
}
