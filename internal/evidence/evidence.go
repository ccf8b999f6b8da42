// Package evidence attaches supporting notes and files to improvements.
// Files live in blob storage; the ranking engine only reads how many
// evidence records an improvement has.
package evidence

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNoteLength = 4000

// Evidence is a note with an optional attached file. The file fields are nil
// for note-only evidence.
type Evidence struct {
	ID            uuid.UUID `json:"id"`
	ImprovementID uuid.UUID `json:"improvement_id"`
	Note          string    `json:"note"`
	Filename      *string   `json:"filename,omitempty"`
	ContentType   *string   `json:"content_type,omitempty"`
	SizeBytes     *int64    `json:"size_bytes,omitempty"`
	PageCount     *int      `json:"page_count,omitempty"`
	StorageKey    *string   `json:"storage_key,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasAttachment reports whether a file is stored for the evidence.
func (e Evidence) HasAttachment() bool {
	return e.StorageKey != nil
}

// Attachment is an uploaded file. PageCount is set for PDFs.
type Attachment struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}

// CreateCommand records new evidence for an improvement.
type CreateCommand struct {
	ImprovementID uuid.UUID
	Note          string
	File          *Attachment
}

// Validate trims the note and reports ErrInvalidNote when it is blank or
// overlong.
func (c *CreateCommand) Validate() error {
	c.Note = strings.TrimSpace(c.Note)
	if c.Note == "" || len(c.Note) > maxNoteLength {
		return ErrInvalidNote
	}
	return nil
}
