package repository

import (
	"context"
	"errors"

	"printhub/internal/model"
)

// ErrMissingStorageRef is returned by Create when a document carries neither
// an external URL nor a blob id. At least one must be present at all times.
var ErrMissingStorageRef = errors.New("document requires an external URL or a blob id")

// DocumentRepository defines data access for document metadata using SQL queries only.
// No orchestration here — strictly persistence operations. Cross-store cleanup
// (binary store, reference index) is the lifecycle service's responsibility.
type DocumentRepository interface {
	// Create inserts a new document record after validating the storage
	// reference invariant. The caller provides ID and UploadedAt; Status
	// defaults to Sent when empty. Returns the stored document.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID. Missing rows surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByOwner returns all documents owned by the given user, oldest first.
	// Each call re-queries current state.
	FindByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// FindByTarget returns all documents targeted at the given printer, oldest first.
	FindByTarget(ctx context.Context, targetID string) ([]model.Document, error)

	// UpdateStatus overwrites the status unconditionally; any status is
	// reachable from any status. Missing rows surface as sql.ErrNoRows.
	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// Delete removes the metadata row only. Missing rows surface as sql.ErrNoRows.
	Delete(ctx context.Context, id string) error
}
