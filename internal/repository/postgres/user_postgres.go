package postgres

import (
	"context"
	"database/sql"
	"time"

	"printhub/internal/model"
	"printhub/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// The sent-documents reference index lives in its own ordered join table so
// index writes never touch other user fields.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, email, password_hash, created_at`

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	return scanUser(row)
}

// FindByID fetches a single user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// UpdatePassword replaces the stored password hash.
func (r *UserPostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2 WHERE id = $1`
	return execExpectingRow(ctx, r.db, q, id, passwordHash)
}

// SetResetToken stores a password reset token and its expiry.
func (r *UserPostgres) SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	const q = `UPDATE users SET reset_token = $2, reset_token_expires_at = $3 WHERE id = $1`
	return execExpectingRow(ctx, r.db, q, id, token, expiresAt)
}

// FindByResetToken fetches the user holding an unexpired reset token.
func (r *UserPostgres) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1 AND reset_token_expires_at > now()`
	return scanUser(r.db.QueryRowContext(ctx, q, token))
}

// ClearResetToken invalidates any outstanding reset token.
func (r *UserPostgres) ClearResetToken(ctx context.Context, id string) error {
	const q = `UPDATE users SET reset_token = NULL, reset_token_expires_at = NULL WHERE id = $1`
	return execExpectingRow(ctx, r.db, q, id)
}

// AddSentDocument appends a document id to the user's sent collection.
func (r *UserPostgres) AddSentDocument(ctx context.Context, userID, docID string) error {
	const q = `INSERT INTO sent_documents (user_id, document_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, q, userID, docID)
	return err
}

// RemoveSentDocument pulls a document id from the user's sent collection.
func (r *UserPostgres) RemoveSentDocument(ctx context.Context, userID, docID string) error {
	const q = `DELETE FROM sent_documents WHERE user_id = $1 AND document_id = $2`
	_, err := r.db.ExecContext(ctx, q, userID, docID)
	return err
}

// SentDocumentIDs lists the user's back-references in insertion order.
func (r *UserPostgres) SentDocumentIDs(ctx context.Context, userID string) ([]string, error) {
	const q = `SELECT document_id FROM sent_documents WHERE user_id = $1 ORDER BY seq`
	return queryIDs(ctx, r.db, q, userID)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
