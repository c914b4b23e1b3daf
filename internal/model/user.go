package model

import "time"

// User is an end user who uploads documents for printing.
// SentDocumentIDs is a non-owning back-reference list maintained by the
// reference index; the documents table remains the source of truth.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	SentDocumentIDs []string  `json:"sent_document_ids,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
