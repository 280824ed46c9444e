package scanning

import (
	"context"
	"fmt"
)

// TextSource turns a receipt image into raw text
type TextSource interface {
	// ExtractText reads all text from an image or PDF
	ExtractText(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close releases any resources held by the engine
	Close() error
}

// ImageProcessingError is returned when an image cannot be decoded or prepared
type ImageProcessingError struct {
	Op  string
	Err error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing failed: %s: %v", e.Op, e.Err)
}

func (e *ImageProcessingError) Unwrap() error {
	return e.Err
}

// OCRError is returned when the recognition engine fails
type OCRError struct {
	Engine string
	Err    error
}

func (e *OCRError) Error() string {
	return fmt.Sprintf("text extraction failed (%s): %v", e.Engine, e.Err)
}

func (e *OCRError) Unwrap() error {
	return e.Err
}

// Engine names accepted by NewTextSource
const (
	EngineTesseract = "tesseract"
	EngineGemini    = "gemini"
	EngineOllama    = "ollama"
)

// Options configures the text source built by NewTextSource
type Options struct {
	Engine string

	// Tesseract
	Language       string
	TessdataPrefix string

	// Gemini
	GeminiKey   string
	GeminiModel string

	// Ollama
	OllamaURL   string
	OllamaModel string

	// Debug logs the raw extracted text
	Debug bool
}

// NewTextSource creates the text source selected by opts.Engine
func NewTextSource(opts Options) (TextSource, error) {
	switch opts.Engine {
	case EngineTesseract, "":
		return NewTesseract(opts.Language, opts.TessdataPrefix, opts.Debug), nil
	case EngineGemini:
		return NewGemini(opts.GeminiKey, opts.GeminiModel, opts.Debug)
	case EngineOllama:
		return NewOllama(opts.OllamaURL, opts.OllamaModel, opts.Debug)
	default:
		return nil, fmt.Errorf("unknown engine %q: valid engines are tesseract, gemini or ollama", opts.Engine)
	}
}
