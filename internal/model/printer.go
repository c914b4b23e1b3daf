package model

import "time"

// Coordinates is a WGS84 point for map display.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Printer is a print shop that receives documents.
// ReceivedDocumentIDs follows the same back-reference discipline as
// User.SentDocumentIDs.
type Printer struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Email               string       `json:"email"`
	PasswordHash        string       `json:"-"`
	Address             string       `json:"address"`
	PostalCode          string       `json:"postal_code"`
	Coordinates         *Coordinates `json:"coordinates,omitempty"`
	ReceivedDocumentIDs []string     `json:"received_document_ids,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
}
