package postgres

import (
	"context"
	"database/sql"
	"time"

	"printhub/internal/model"
	"printhub/internal/repository"
)

// PrinterPostgres is a PostgreSQL implementation of repository.PrinterRepository.
type PrinterPostgres struct {
	db *sql.DB
}

// NewPrinterPostgres creates a new PrinterPostgres repository.
func NewPrinterPostgres(db *sql.DB) *PrinterPostgres {
	return &PrinterPostgres{db: db}
}

var _ repository.PrinterRepository = (*PrinterPostgres)(nil)

const printerColumns = `id, name, email, password_hash, address, postal_code, lat, lng, created_at`

// Create inserts a new printer row and returns the stored record.
func (r *PrinterPostgres) Create(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	var lat, lng sql.NullFloat64
	if p.Coordinates != nil {
		lat = sql.NullFloat64{Float64: p.Coordinates.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: p.Coordinates.Lng, Valid: true}
	}
	const q = `
		INSERT INTO printers (id, name, email, password_hash, address, postal_code, lat, lng, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + printerColumns
	row := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Email, p.PasswordHash, p.Address, p.PostalCode, lat, lng, p.CreatedAt)
	return scanPrinter(row)
}

// FindByID fetches a single printer by ID.
func (r *PrinterPostgres) FindByID(ctx context.Context, id string) (*model.Printer, error) {
	const q = `SELECT ` + printerColumns + ` FROM printers WHERE id = $1`
	return scanPrinter(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single printer by email.
func (r *PrinterPostgres) FindByEmail(ctx context.Context, email string) (*model.Printer, error) {
	const q = `SELECT ` + printerColumns + ` FROM printers WHERE email = $1`
	return scanPrinter(r.db.QueryRowContext(ctx, q, email))
}

// FindAll returns every registered printer.
func (r *PrinterPostgres) FindAll(ctx context.Context) ([]model.Printer, error) {
	const q = `SELECT ` + printerColumns + ` FROM printers ORDER BY created_at, id`
	return r.queryPrinters(ctx, q)
}

// FindByPostalCode returns printers matching the postal code exactly.
func (r *PrinterPostgres) FindByPostalCode(ctx context.Context, postalCode string) ([]model.Printer, error) {
	const q = `SELECT ` + printerColumns + ` FROM printers WHERE postal_code = $1 ORDER BY created_at, id`
	return r.queryPrinters(ctx, q, postalCode)
}

// UpdateAddress replaces the printer's address, postal code and coordinates.
func (r *PrinterPostgres) UpdateAddress(ctx context.Context, id, address, postalCode string, coords model.Coordinates) error {
	const q = `UPDATE printers SET address = $2, postal_code = $3, lat = $4, lng = $5 WHERE id = $1`
	return execExpectingRow(ctx, r.db, q, id, address, postalCode, coords.Lat, coords.Lng)
}

// UpdatePassword replaces the stored password hash.
func (r *PrinterPostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `UPDATE printers SET password_hash = $2 WHERE id = $1`
	return execExpectingRow(ctx, r.db, q, id, passwordHash)
}

// SetResetToken stores a password reset token and its expiry.
func (r *PrinterPostgres) SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	const q = `UPDATE printers SET reset_token = $2, reset_token_expires_at = $3 WHERE id = $1`
	return execExpectingRow(ctx, r.db, q, id, token, expiresAt)
}

// FindByResetToken fetches the printer holding an unexpired reset token.
func (r *PrinterPostgres) FindByResetToken(ctx context.Context, token string) (*model.Printer, error) {
	const q = `SELECT ` + printerColumns + ` FROM printers WHERE reset_token = $1 AND reset_token_expires_at > now()`
	return scanPrinter(r.db.QueryRowContext(ctx, q, token))
}

// ClearResetToken invalidates any outstanding reset token.
func (r *PrinterPostgres) ClearResetToken(ctx context.Context, id string) error {
	const q = `UPDATE printers SET reset_token = NULL, reset_token_expires_at = NULL WHERE id = $1`
	return execExpectingRow(ctx, r.db, q, id)
}

// AddReceivedDocument appends a document id to the printer's received collection.
func (r *PrinterPostgres) AddReceivedDocument(ctx context.Context, printerID, docID string) error {
	const q = `INSERT INTO received_documents (printer_id, document_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, q, printerID, docID)
	return err
}

// RemoveReceivedDocument pulls a document id from the printer's received collection.
func (r *PrinterPostgres) RemoveReceivedDocument(ctx context.Context, printerID, docID string) error {
	const q = `DELETE FROM received_documents WHERE printer_id = $1 AND document_id = $2`
	_, err := r.db.ExecContext(ctx, q, printerID, docID)
	return err
}

// ReceivedDocumentIDs lists the printer's back-references in insertion order.
func (r *PrinterPostgres) ReceivedDocumentIDs(ctx context.Context, printerID string) ([]string, error) {
	const q = `SELECT document_id FROM received_documents WHERE printer_id = $1 ORDER BY seq`
	return queryIDs(ctx, r.db, q, printerID)
}

func (r *PrinterPostgres) queryPrinters(ctx context.Context, q string, args ...any) ([]model.Printer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Printer, 0)
	for rows.Next() {
		p, err := scanPrinterRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPrinter(row *sql.Row) (*model.Printer, error) {
	var (
		p        model.Printer
		lat, lng sql.NullFloat64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Address, &p.PostalCode, &lat, &lng, &p.CreatedAt); err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		p.Coordinates = &model.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &p, nil
}

func scanPrinterRow(rows *sql.Rows) (*model.Printer, error) {
	var (
		p        model.Printer
		lat, lng sql.NullFloat64
	)
	if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Address, &p.PostalCode, &lat, &lng, &p.CreatedAt); err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		p.Coordinates = &model.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &p, nil
}
