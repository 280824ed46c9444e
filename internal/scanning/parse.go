package scanning

import (
	"errors"
	"strings"
)

var errEmptyTranscript = errors.New("no text in response")

// cleanTranscript strips the markdown fences vision models like to add
// and normalizes line endings. It keeps the text otherwise untouched.
func cleanTranscript(text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	// Remove opening markdown code blocks
	if strings.HasPrefix(text, "```") {
		if nl := strings.Index(text, "\n"); nl != -1 {
			text = text[nl+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return "", errEmptyTranscript
	}
	return text, nil
}
