package repository

import (
	"context"
	"time"

	"printhub/internal/model"
)

// UserRepository defines data access for user accounts and the sent-documents
// side of the reference index. The index methods only ever touch the
// back-reference collection, never other user fields.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Password reset token lifecycle.
	SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, token string) (*model.User, error)
	ClearResetToken(ctx context.Context, id string) error

	// Reference index: append/remove a document id in the user's ordered
	// sent-documents collection.
	AddSentDocument(ctx context.Context, userID, docID string) error
	RemoveSentDocument(ctx context.Context, userID, docID string) error
	SentDocumentIDs(ctx context.Context, userID string) ([]string, error)
}
