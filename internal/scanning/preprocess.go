package scanning

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

const (
	// Images shorter than this are upscaled before OCR
	minOCRHeight  = 800
	upscaleHeight = 1200

	// Pixels brighter than 150 become background
	binaryThreshold = 151

	// 3x3 median window
	medianRadius = 1
)

// Preprocess prepares a photo for Tesseract: upscale small images, convert
// to grayscale, binarize with inverted polarity, then median-filter the noise.
func Preprocess(img image.Image) image.Image {
	if h := img.Bounds().Dy(); h > 0 && h < minOCRHeight {
		img = imaging.Resize(img, 0, upscaleHeight, imaging.Lanczos)
	}

	gray := effect.Grayscale(img)
	binary := segment.Threshold(gray, binaryThreshold)
	inverted := effect.Invert(binary)
	return effect.Median(inverted, medianRadius)
}
