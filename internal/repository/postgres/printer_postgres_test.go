package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"printhub/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var printerCols = []string{
	"id", "name", "email", "password_hash", "address", "postal_code", "lat", "lng", "created_at",
}

func TestPrinterPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPrinterPostgres(db)
	ctx := context.Background()

	t.Run("with coordinates", func(t *testing.T) {
		rows := sqlmock.NewRows(printerCols).
			AddRow("printer-1", "CopyShop", "shop@example.com", "hash", "Main St 1", "10115", 52.53, 13.38, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM printers WHERE id = ?").
			WithArgs("printer-1").
			WillReturnRows(rows)

		p, err := repo.FindByID(ctx, "printer-1")

		require.NoError(t, err)
		assert.Equal(t, "CopyShop", p.Name)
		require.NotNil(t, p.Coordinates)
		assert.Equal(t, 52.53, p.Coordinates.Lat)
	})

	t.Run("without coordinates", func(t *testing.T) {
		rows := sqlmock.NewRows(printerCols).
			AddRow("printer-2", "PrintCo", "printco@example.com", "hash", "", "", nil, nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM printers WHERE id = ?").
			WithArgs("printer-2").
			WillReturnRows(rows)

		p, err := repo.FindByID(ctx, "printer-2")

		require.NoError(t, err)
		assert.Nil(t, p.Coordinates)
	})
}

func TestPrinterPostgres_FindByPostalCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPrinterPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(printerCols).
		AddRow("printer-1", "CopyShop", "shop@example.com", "hash", "Main St 1", "10115", 52.53, 13.38, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM printers WHERE postal_code = ?").
		WithArgs("10115").
		WillReturnRows(rows)

	printers, err := repo.FindByPostalCode(ctx, "10115")

	require.NoError(t, err)
	require.Len(t, printers, 1)
	assert.Equal(t, "10115", printers[0].PostalCode)
}

func TestPrinterPostgres_UpdateAddress(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPrinterPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE printers SET address").
			WithArgs("printer-1", "New St 5", "10117", 52.51, 13.40).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateAddress(ctx, "printer-1", "New St 5", "10117", model.Coordinates{Lat: 52.51, Lng: 13.40})

		assert.NoError(t, err)
	})

	t.Run("missing printer", func(t *testing.T) {
		mock.ExpectExec("UPDATE printers SET address").
			WithArgs("missing", "New St 5", "10117", 52.51, 13.40).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateAddress(ctx, "missing", "New St 5", "10117", model.Coordinates{Lat: 52.51, Lng: 13.40})

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestPrinterPostgres_ReceivedDocumentIndex(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPrinterPostgres(db)
	ctx := context.Background()

	t.Run("append and remove", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO received_documents").
			WithArgs("printer-1", "doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM received_documents").
			WithArgs("printer-1", "doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AddReceivedDocument(ctx, "printer-1", "doc-1"))
		assert.NoError(t, repo.RemoveReceivedDocument(ctx, "printer-1", "doc-1"))
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"document_id"}).
			AddRow("doc-2").
			AddRow("doc-1")

		mock.ExpectQuery("SELECT document_id FROM received_documents WHERE printer_id = (.+) ORDER BY seq").
			WithArgs("printer-1").
			WillReturnRows(rows)

		ids, err := repo.ReceivedDocumentIDs(ctx, "printer-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"doc-2", "doc-1"}, ids)
	})
}
