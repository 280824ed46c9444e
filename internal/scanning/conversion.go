package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

const mimePDF = "application/pdf"

// normalizeMimeType lowercases and trims a content type, defaulting to JPEG
func normalizeMimeType(contentType string) string {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mimeType, ";"); i != -1 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" {
		mimeType = "image/jpeg" // default
	}
	return mimeType
}

// decodeImage turns PDF, HEIC or standard image bytes into an image.
// Errors are always *ImageProcessingError.
func decodeImage(imageData []byte, contentType string) (image.Image, error) {
	if len(imageData) == 0 {
		return nil, &ImageProcessingError{Op: "reading image", Err: fmt.Errorf("image is empty")}
	}

	mimeType := normalizeMimeType(contentType)

	switch {
	case mimeType == mimePDF || isPDFFormat(imageData):
		img, err := renderPDF(imageData)
		if err != nil {
			return nil, &ImageProcessingError{Op: "rendering PDF", Err: err}
		}
		return img, nil
	case isHEICFormat(imageData) || isHEICMimeType(mimeType):
		// Go's standard image package doesn't support HEIC (common on iPhones)
		img, err := heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, &ImageProcessingError{Op: "decoding HEIC/HEIF image", Err: err}
		}
		return img, nil
	default:
		// Phone photos carry their rotation in EXIF
		img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
		if err != nil {
			if strings.Contains(err.Error(), "unknown format") || strings.Contains(err.Error(), "unsupported") {
				err = fmt.Errorf("unsupported image format (supported: JPEG, PNG, GIF, HEIC, HEIF, PDF): %w", err)
			}
			return nil, &ImageProcessingError{Op: "decoding image", Err: err}
		}
		return img, nil
	}
}

// renderPDF renders the first page of a PDF; receipts are single page
func renderPDF(pdfData []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return img, nil
}

// encodePNG encodes an image as PNG bytes
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ImageProcessingError{Op: "encoding PNG", Err: err}
	}
	return buf.Bytes(), nil
}

// isPDFFormat checks for the %PDF magic bytes
func isPDFFormat(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// isHEICFormat checks if the image data is in HEIC/HEIF format
// HEIC files carry an ftyp box at offset 4 with a HEIC-related brand
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// prepareImageData converts anything that isn't already PNG into PNG.
// Vision models get the untouched picture; only OCR needs preprocessing.
func prepareImageData(imageData []byte, contentType string) ([]byte, error) {
	mimeType := normalizeMimeType(contentType)
	if mimeType == "image/png" && !isHEICFormat(imageData) && !isPDFFormat(imageData) {
		return imageData, nil
	}

	img, err := decodeImage(imageData, mimeType)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}
