package scanning

import (
	"context"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

const defaultLanguage = "eng"

// Tesseract implements TextSource with a local Tesseract engine
type Tesseract struct {
	language       string
	tessdataPrefix string
	debug          bool
}

// NewTesseract creates a Tesseract text source.
// tessdataPrefix may be empty to use the system tessdata location.
func NewTesseract(language string, tessdataPrefix string, debug bool) *Tesseract {
	if language == "" {
		language = defaultLanguage
	}
	return &Tesseract{
		language:       language,
		tessdataPrefix: tessdataPrefix,
		debug:          debug,
	}
}

// ExtractText decodes, preprocesses and recognizes the receipt image
func (t *Tesseract) ExtractText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	img, err := decodeImage(imageData, contentType)
	if err != nil {
		return "", err
	}

	pngData, err := encodePNG(Preprocess(img))
	if err != nil {
		return "", err
	}

	// gosseract can't be interrupted once it starts
	if err := ctx.Err(); err != nil {
		return "", &OCRError{Engine: EngineTesseract, Err: err}
	}

	text, err := t.recognize(pngData)
	if err != nil {
		return "", &OCRError{Engine: EngineTesseract, Err: err}
	}

	if t.debug {
		slog.Debug("Extracted text", "engine", EngineTesseract, "text", text)
	}
	return text, nil
}

func (t *Tesseract) recognize(pngData []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			return "", err
		}
	}
	if err := client.SetLanguage(t.language); err != nil {
		return "", err
	}
	// Receipts read as one uniform block of text (tesseract --psm 6)
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(pngData); err != nil {
		return "", err
	}
	return client.Text()
}

// Close is a no-op; a client is created per call
func (t *Tesseract) Close() error {
	return nil
}
