package model

import "time"

// Status is the print state of a document.
type Status string

const (
	StatusSent     Status = "Sent"
	StatusPrinting Status = "Printing"
	StatusPrinted  Status = "Printed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSent, StatusPrinting, StatusPrinted:
		return true
	}
	return false
}

// Document represents a file a user sent to a printer.
// This is a pure domain model with no database-specific dependencies or tags.
// The document row is the authoritative record; users and printers hold
// back-references only.
//
// At least one of ExternalURL and BlobID is always set. OwnerID, TargetID,
// FileName and the storage reference are immutable after creation.
type Document struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	TargetID    string    `json:"target_id"`
	FileName    string    `json:"file_name"`
	ExternalURL string    `json:"external_url,omitempty"`
	BlobID      string    `json:"blob_id,omitempty"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Status      Status    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// HasBlob reports whether the document's bytes live in the binary store.
func (d *Document) HasBlob() bool { return d.BlobID != "" }
