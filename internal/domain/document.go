package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded supporting file (currently only the PPA-change
// letter of request), stored in MinIO.
type Document struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	StoragePath string    `json:"-" db:"storage_path"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	URL string `json:"url,omitempty" db:"-"`
}

const MaxDocumentSize = 5 * 1024 * 1024

// AllowedDocumentTypes mirrors the upload policy: images or PDF only.
var AllowedDocumentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}
