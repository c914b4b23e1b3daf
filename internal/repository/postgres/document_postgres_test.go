package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"printhub/internal/model"
	"printhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var documentCols = []string{
	"id", "owner_id", "target_id", "file_name", "external_url",
	"blob_id", "content_type", "size", "status", "uploaded_at",
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "doc-1",
		OwnerID:     "user-1",
		TargetID:    "printer-1",
		FileName:    "report.pdf",
		BlobID:      "documents/report.pdf",
		ContentType: "application/pdf",
		Size:        123,
		Status:      model.StatusSent,
		UploadedAt:  now,
	}

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow(doc.ID, doc.OwnerID, doc.TargetID, doc.FileName, nil,
				doc.BlobID, doc.ContentType, doc.Size, string(doc.Status), doc.UploadedAt)

		mock.ExpectQuery("INSERT INTO documents").
			WithArgs(doc.ID, doc.OwnerID, doc.TargetID, doc.FileName,
				nullable(""), nullable(doc.BlobID), doc.ContentType, doc.Size, doc.Status, doc.UploadedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, doc)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, doc.ID, result.ID)
		assert.Equal(t, doc.BlobID, result.BlobID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing storage reference short-circuits", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Document{
			ID: "doc-2", OwnerID: "user-1", TargetID: "printer-1", FileName: "x.pdf",
		})

		assert.ErrorIs(t, err, repository.ErrMissingStorageRef)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("doc-1", "user-1", "printer-1", "report.pdf", "https://example.com/doc.pdf",
				nil, "application/pdf", 100, "Sent", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-1")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "doc-1", doc.ID)
		assert.Equal(t, "https://example.com/doc.pdf", doc.ExternalURL)
		assert.Empty(t, doc.BlobID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_FindByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(documentCols).
		AddRow("doc-1", "user-1", "printer-1", "a.pdf", nil, "documents/a.pdf", "application/pdf", 10, "Sent", time.Now()).
		AddRow("doc-2", "user-1", "printer-2", "b.pdf", nil, "documents/b.pdf", "application/pdf", 20, "Printing", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE owner_id = (.+) ORDER BY uploaded_at").
		WithArgs("user-1").
		WillReturnRows(rows)

	docs, err := repo.FindByOwner(ctx, "user-1")

	assert.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, model.StatusPrinting, docs[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents SET status").
			WithArgs("doc-1", model.StatusPrinting).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "doc-1", model.StatusPrinting)

		assert.NoError(t, err)
	})

	t.Run("no rows updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents SET status").
			WithArgs("missing", model.StatusPrinted).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "missing", model.StatusPrinted)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, "doc-1")

		assert.NoError(t, err)
	})

	t.Run("already gone", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
