package receipt

import (
	"time"

	"github.com/zombor/receipt-ocr/internal/extraction"
)

// Receipt is a processed receipt image together with its extracted record
type Receipt struct {
	ID          string             `json:"id"`
	Filename    string             `json:"filename"`
	ContentType string             `json:"content_type"`
	Record      *extraction.Record `json:"record"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
