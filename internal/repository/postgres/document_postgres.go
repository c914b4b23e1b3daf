package postgres

import (
	"context"
	"database/sql"

	"printhub/internal/model"
	"printhub/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, owner_id, target_id, file_name, external_url, blob_id, content_type, size, status, uploaded_at`

// Create inserts a new document row and returns the stored record.
// The storage reference invariant is checked here before touching the
// database; a CHECK constraint backs it up at the schema level.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	if doc.ExternalURL == "" && doc.BlobID == "" {
		return nil, repository.ErrMissingStorageRef
	}
	status := doc.Status
	if status == "" {
		status = model.StatusSent
	}

	const q = `
		INSERT INTO documents (id, owner_id, target_id, file_name, external_url, blob_id, content_type, size, status, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.TargetID,
		doc.FileName,
		nullable(doc.ExternalURL),
		nullable(doc.BlobID),
		doc.ContentType,
		doc.Size,
		status,
		doc.UploadedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindByOwner returns the owner's documents, oldest upload first.
func (r *DocumentPostgres) FindByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE owner_id = $1 ORDER BY uploaded_at, id`
	return r.queryDocuments(ctx, q, ownerID)
}

// FindByTarget returns the printer's documents, oldest upload first.
func (r *DocumentPostgres) FindByTarget(ctx context.Context, targetID string) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE target_id = $1 ORDER BY uploaded_at, id`
	return r.queryDocuments(ctx, q, targetID)
}

// UpdateStatus overwrites the status; no state-machine guard at this layer.
func (r *DocumentPostgres) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	const q = `UPDATE documents SET status = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a document row only; callers own any related cleanup.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *DocumentPostgres) queryDocuments(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var (
			d           model.Document
			externalURL sql.NullString
			blobID      sql.NullString
		)
		if err := rows.Scan(
			&d.ID,
			&d.OwnerID,
			&d.TargetID,
			&d.FileName,
			&externalURL,
			&blobID,
			&d.ContentType,
			&d.Size,
			&d.Status,
			&d.UploadedAt,
		); err != nil {
			return nil, err
		}
		d.ExternalURL = externalURL.String
		d.BlobID = blobID.String
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanDocument(row *sql.Row) (*model.Document, error) {
	var (
		d           model.Document
		externalURL sql.NullString
		blobID      sql.NullString
	)
	if err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.TargetID,
		&d.FileName,
		&externalURL,
		&blobID,
		&d.ContentType,
		&d.Size,
		&d.Status,
		&d.UploadedAt,
	); err != nil {
		return nil, err
	}
	d.ExternalURL = externalURL.String
	d.BlobID = blobID.String
	return &d, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
