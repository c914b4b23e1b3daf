package repository

import (
	"context"
	"time"

	"printhub/internal/model"
)

// PrinterRepository defines data access for print shops and the
// received-documents side of the reference index.
type PrinterRepository interface {
	Create(ctx context.Context, p *model.Printer) (*model.Printer, error)
	FindByID(ctx context.Context, id string) (*model.Printer, error)
	FindByEmail(ctx context.Context, email string) (*model.Printer, error)
	FindAll(ctx context.Context) ([]model.Printer, error)
	FindByPostalCode(ctx context.Context, postalCode string) ([]model.Printer, error)
	UpdateAddress(ctx context.Context, id, address, postalCode string, coords model.Coordinates) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Password reset token lifecycle.
	SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, token string) (*model.Printer, error)
	ClearResetToken(ctx context.Context, id string) error

	// Reference index: append/remove a document id in the printer's ordered
	// received-documents collection.
	AddReceivedDocument(ctx context.Context, printerID, docID string) error
	RemoveReceivedDocument(ctx context.Context, printerID, docID string) error
	ReceivedDocumentIDs(ctx context.Context, printerID string) ([]string, error)
}
